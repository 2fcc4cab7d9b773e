package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vibeworks/appweave/src"
)

const version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "appweave",
	Short:   "Generate, modify and review multi-file applications from a prompt",
	Long:    "AppWeave turns a natural-language prompt into a complete multi-file application,\nlets you modify it with follow-up requests, and reviews the result. Run without\narguments to open the studio TUI.",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudio(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .appweave.yaml in . or $HOME)")
	rootCmd.PersistentFlags().String("store", "", "project store file")
	rootCmd.PersistentFlags().String("model", "", "model name")
	rootCmd.PersistentFlags().String("utcp-providers", "", "UTCP providers file for streamed tool generation")
	rootCmd.PersistentFlags().String("stream-tool", "", "UTCP tool name used for streamed generation")

	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("utcp_providers", rootCmd.PersistentFlags().Lookup("utcp-providers"))
	_ = viper.BindPFlag("stream_tool", rootCmd.PersistentFlags().Lookup("stream-tool"))
}

func initConfig() {
	viper.SetDefault("store", defaultStorePath())
	viper.SetDefault("model", "gemini-2.5-pro")
	viper.SetDefault("utcp_providers", "")
	viper.SetDefault("stream_tool", "")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".appweave")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix("APPWEAVE")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "appweave-projects.json"
	}
	return filepath.Join(home, ".appweave", "projects.json")
}

// storeFromConfig opens the project store without building a model client,
// for commands that only touch persisted data.
func storeFromConfig() *src.ProjectStore {
	return src.NewProjectStore(viper.GetString("store"))
}

// buildDeps wires the store, model client and generator from config. The
// UTCP client is best-effort: without one, generation still works over the
// one-shot agent path.
func buildDeps(ctx context.Context) (*src.Generator, *src.ProjectStore, error) {
	utcpClient, err := src.BuildUTCP(ctx, viper.GetString("utcp_providers"))
	if err != nil {
		log.Printf("⚠️ UTCP unavailable: %v", err)
		utcpClient = nil
	}

	agent, err := src.BuildAgent(ctx, viper.GetString("model"), utcpClient)
	if err != nil {
		return nil, nil, err
	}

	client := src.NewLatticeClient(agent, utcpClient, viper.GetString("stream_tool"))
	store := src.NewProjectStore(viper.GetString("store"))
	return src.NewGenerator(client, store), store, nil
}
