package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibeworks/appweave/src"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a project headlessly from a prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		gen, _, err := buildDeps(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("🧠 Planning...")
		project, err := gen.Generate(cmd.Context(), prompt, func(ev src.StreamEvent) {
			if ev.Kind == src.EventFileComplete {
				fmt.Printf("✅ %s\n", ev.Path)
			}
		})
		if err != nil {
			if project == nil {
				return err
			}
			fmt.Printf("⚠️ Generation incomplete: %v\n", err)
		}

		fmt.Printf("\n📦 Project %s (%s)\n\n", project.Title(), project.ID)
		fmt.Print(src.RenderFileTree(src.BuildFileTree(project.TreeFiles())))
		printReview(project.Review)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func printReview(r src.Review) {
	sections := []struct {
		title string
		items []src.Suggestion
	}{
		{"Crashes", r.Crashes},
		{"Experience", r.Experience},
		{"Other", r.Other},
	}
	printed := false
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		if !printed {
			fmt.Println("\n🔍 Review:")
			printed = true
		}
		fmt.Printf("  %s:\n", s.title)
		for _, item := range s.items {
			fmt.Printf("    • %s\n", item.Description)
		}
	}
	if !printed {
		fmt.Println("\n🔍 Review: no findings")
	}
}
