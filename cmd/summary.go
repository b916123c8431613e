package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/billmap/internal/dashboard"
	"github.com/sells-group/billmap/internal/stats"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print total price, mean price and mean tip over all bills",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		p, err := newPrinter()
		if err != nil {
			return err
		}

		sum := ds.Summary()
		panel := p.Overall(sum)

		if summaryJSON {
			return writeJSON(cmd.OutOrStdout(), struct {
				Summary stats.Summary   `json:"summary"`
				Panel   dashboard.Panel `json:"panel"`
			}{sum, panel})
		}
		formatPanel(cmd.OutOrStdout(), sum.Count, panel)
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(summaryCmd)
}
