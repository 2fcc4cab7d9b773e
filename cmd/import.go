package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibeworks/appweave/src"
)

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Import a project from a zip archive",
	Long:  "Imports a zip archive as a new project. Archives exported by AppWeave carry a\nproject.json manifest; plain zips work too, with the plan and review inferred\nby the model.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat archive: %w", err)
		}

		arc, err := src.ReadArchive(f, info.Size())
		if err != nil {
			return err
		}

		gen, _, err := buildDeps(cmd.Context())
		if err != nil {
			return err
		}
		if arc.Manifest == nil {
			fmt.Println("🧠 No manifest found, inferring plan and review...")
		}
		project, err := gen.Import(cmd.Context(), arc)
		if err != nil {
			return err
		}

		fmt.Printf("📦 Imported %s as %s (%d files)\n\n", args[0], project.ID, len(project.Files))
		fmt.Print(src.RenderFileTree(src.BuildFileTree(project.TreeFiles())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
