// ABOUTME: Root Cobra command and global flags for postboard CLI.
// ABOUTME: Sets up lifecycle hooks for config loading, address storage, and logging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2389-research/postboard/internal/config"
	"github.com/2389-research/postboard/internal/controller"
	"github.com/2389-research/postboard/internal/logging"
	"github.com/2389-research/postboard/internal/render"
	"github.com/2389-research/postboard/internal/storage"
)

var globalConfig *config.Config
var globalStore *config.Store
var globalLogger *zap.Logger

// Global flags
var (
	baseURLFlag string
	originFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "Browse and edit posts on a post API",
	Long: `
██████╗  ██████╗ ███████╗████████╗
██╔══██╗██╔═══██╗██╔════╝╚══██╔══╝
██████╔╝██║   ██║███████╗   ██║
██╔═══╝ ██║   ██║╚════██║   ██║
██║     ╚██████╔╝███████║   ██║
╚═╝      ╚═════╝ ╚══════╝   ╚═╝

   BOARD

Load, add, delete, search and sort posts on a remote post API.
The API address is remembered between runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if originFlag != "" {
			cfg.Origin = originFlag
		}
		globalConfig = cfg

		store, err := config.OpenStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open address store: %w", err)
		}
		globalStore = store

		if baseURLFlag != "" {
			if err := store.Set(baseURLFlag); err != nil {
				return fmt.Errorf("failed to save base URL: %w", err)
			}
		}

		globalLogger = logging.New(cfg.GetLogLevel(), os.Stderr)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalLogger != nil {
			_ = globalLogger.Sync()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "API base URL (saved for later runs)")
	rootCmd.PersistentFlags().StringVar(&originFlag, "origin", "", "Storage origin for the saved base URL (default from config)")
}

// newController builds a controller over page, logging to logger.
func newController(page render.Page, logger *zap.Logger) *controller.Controller {
	client := storage.NewRemoteClient(storage.WithLogger(logger))
	return controller.New(client, page, globalStore, controller.WithLogger(logger))
}

// restoredDocument returns a headless page with the saved address filled in.
func restoredDocument() *render.Document {
	doc := render.DefaultDocument()
	if saved, ok := globalStore.Saved(); ok {
		doc.SetValue(render.FieldBaseURL, saved)
	}
	return doc
}
