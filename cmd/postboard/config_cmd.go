// ABOUTME: CLI commands for inspecting and editing postboard settings.
// ABOUTME: Shows config, saves or clears the API address, and selects the origin.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/config"
	"github.com/2389-research/postboard/internal/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage postboard settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active settings and saved API address",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetBaseURLCmd = &cobra.Command{
	Use:   "set-base-url <url>",
	Short: "Save the API base URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetBaseURL,
}

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved API base URL",
	Args:  cobra.NoArgs,
	RunE:  runConfigClear,
}

var configSetOriginCmd = &cobra.Command{
	Use:   "set-origin <name>",
	Short: "Choose which origin's saved address is used by default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetOrigin,
}

var checkBaseURL bool

func init() {
	configSetBaseURLCmd.Flags().BoolVar(&checkBaseURL, "check", false, "Fetch the post list once before saving")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetBaseURLCmd)
	configCmd.AddCommand(configClearCmd)
	configCmd.AddCommand(configSetOriginCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	saved, ok := globalStore.Saved()
	if !ok {
		saved = "(not set)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n", configPath)
	fmt.Fprintf(out, "Origin:      %s\n", globalConfig.GetOrigin())
	fmt.Fprintf(out, "Stored in:   %s\n", globalStore.Location())
	fmt.Fprintf(out, "Base URL:    %s\n", saved)
	fmt.Fprintf(out, "Log level:   %s\n", globalConfig.GetLogLevel())
	return nil
}

func runConfigSetBaseURL(cmd *cobra.Command, args []string) error {
	if checkBaseURL {
		client := storage.NewRemoteClient(storage.WithLogger(globalLogger))
		if err := client.Probe(cmd.Context(), args[0]); err != nil {
			return err
		}
	}
	if err := globalStore.Set(args[0]); err != nil {
		return fmt.Errorf("failed to save base URL: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Base URL saved for origin %s\n", globalConfig.GetOrigin())
	return nil
}

func runConfigClear(cmd *cobra.Command, args []string) error {
	if err := globalStore.Clear(); err != nil {
		return fmt.Errorf("failed to clear base URL: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Base URL cleared")
	return nil
}

func runConfigSetOrigin(cmd *cobra.Command, args []string) error {
	globalConfig.Origin = args[0]
	if err := globalConfig.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default origin set to %s\n", args[0])
	return nil
}
