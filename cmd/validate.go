package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/billmap/internal/bills"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and total every bill, reporting the first error",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := bills.Discover(cfg.Bills.Dir)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d bills in %d region files under %s\n",
			len(ds.Table), len(files), cfg.Bills.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
