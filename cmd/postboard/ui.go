// ABOUTME: Cobra command for the interactive terminal page.
// ABOUTME: Launches the bubbletea post page with its diagnostic console.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/logging"
	"github.com/2389-research/postboard/internal/tui"
)

// consoleCapacity is how many log lines the interactive console retains.
const consoleCapacity = 200

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive post page",
	Long: `Open the interactive post page.

The saved API address is restored and posts are loaded on start. Tab moves
between fields; Enter runs the action next to the focused field.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	console := logging.NewConsole(consoleCapacity)
	writers := []io.Writer{console}

	logPath, err := globalConfig.GetLogFile()
	if err != nil {
		return fmt.Errorf("failed to resolve log file: %w", err)
	}
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		writers = append(writers, f)
	}

	logger := logging.New(globalConfig.GetLogLevel(), writers...)
	defer func() { _ = logger.Sync() }()

	page := tui.NewPage()
	model := tui.NewAppModel(page, newController(page, logger), console)

	p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
