package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geomarket/internal/config"
)

const version = "0.1.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geomarket",
	Short: "Geomarketing analysis service",
	Long:  "Scores commercial locations and soil quality from open geodata, generates AI analysis narratives, and renders interactive maps and heatmaps.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
