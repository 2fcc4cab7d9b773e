package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibeworks/appweave/src"
)

var exportCmd = &cobra.Command{
	Use:   "export <project-id> [output.zip]",
	Short: "Export a stored project as a zip archive",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := storeFromConfig()
		project, err := store.Get(args[0])
		if err != nil {
			return err
		}

		out := project.ID + ".zip"
		if len(args) > 1 {
			out = args[1]
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create archive: %w", err)
		}
		defer f.Close()

		if err := src.WriteArchive(f, project); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		fmt.Printf("📦 Exported %s (%d files) to %s\n", project.Title(), len(project.Files), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
