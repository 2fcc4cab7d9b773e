package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vibeworks/appweave/src"
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Open the studio TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(studioCmd)
}

func runStudio(ctx context.Context) error {
	fmt.Println("🚀 Initializing AppWeave...")

	gen, store, err := buildDeps(ctx)
	if err != nil {
		return fmt.Errorf("build model client: %w", err)
	}

	m, err := src.NewModel(ctx, gen, store)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.Program = p
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
