package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localrank/insight-server/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "insight-server",
	Short: "Business-intelligence tool server over LocalRank rank tracking",
	Long:  "Serves a read-only tool catalog that turns raw LocalRank scan history into portfolio summaries, win stories, risk flags, and client-ready narratives.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is the normal case in deployment.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
