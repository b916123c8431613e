package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/billmap/internal/config"
)

var (
	cfg     *config.Config
	billDir string
)

var rootCmd = &cobra.Command{
	Use:          "billmap",
	Short:        "Map and summarize restaurant bills",
	Long:         "Loads per-region bill files, totals every bill, and serves summary metrics, bounding-box regions and receipt popups for a map dashboard.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if billDir != "" {
			c.Bills.Dir = billDir
		}
		if err := c.Validate(); err != nil {
			return err
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

func init() {
	rootCmd.PersistentFlags().StringVar(&billDir, "dir", "", "directory of region bill files (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
