package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibeworks/appweave/src"
)

var modifyCmd = &cobra.Command{
	Use:   "modify <project-id> <request>",
	Short: "Apply a change request to a stored project",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		request := strings.Join(args[1:], " ")
		gen, store, err := buildDeps(cmd.Context())
		if err != nil {
			return err
		}
		project, err := store.Get(args[0])
		if err != nil {
			return err
		}
		before := map[string]string{}
		for path, content := range project.Files {
			before[path] = content
		}

		changed, err := gen.Modify(cmd.Context(), project, request, func(ev src.StreamEvent) {
			if ev.Kind == src.EventFileComplete {
				fmt.Printf("✏️  %s\n", ev.Path)
			}
		})
		if err != nil {
			return fmt.Errorf("modify (project restored): %w", err)
		}

		if len(changed) == 0 {
			fmt.Println("No existing files changed (new files may have been added).")
		} else {
			fmt.Printf("Changed %d files:\n", len(changed))
			for _, path := range changed {
				fmt.Printf("  • %s\n", path)
			}
			if showDiffs {
				for _, path := range changed {
					fmt.Print(src.UnifiedDiff(path, before[path], project.Files[path]))
				}
			}
		}
		printReview(project.Review)
		return nil
	},
}

var showDiffs bool

func init() {
	modifyCmd.Flags().BoolVar(&showDiffs, "diff", true, "print unified diffs for changed files")
	rootCmd.AddCommand(modifyCmd)
}
