package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/billmap/internal/geo"
)

var (
	regionBox  geo.BBox
	regionJSON bool
)

var regionCmd = &cobra.Command{
	Use:   "region",
	Short: "List the bills inside a bounding box and compare them to the overall metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		p, err := newPrinter()
		if err != nil {
			return err
		}

		region := ds.Region(regionBox)
		panel := p.Regional(region.Summary, ds.Summary())

		out := cmd.OutOrStdout()
		if regionJSON {
			return writeJSON(out, struct {
				Region any `json:"region"`
				Panel  any `json:"panel"`
			}{region, panel})
		}

		formatRows(out, region.Table)
		_, _ = fmt.Fprintln(out)
		formatPanel(out, region.Summary.Count, panel)
		return nil
	},
}

func init() {
	regionCmd.Flags().Float64Var(&regionBox.South, "south", 0, "southern latitude edge")
	regionCmd.Flags().Float64Var(&regionBox.West, "west", 0, "western longitude edge")
	regionCmd.Flags().Float64Var(&regionBox.North, "north", 0, "northern latitude edge")
	regionCmd.Flags().Float64Var(&regionBox.East, "east", 0, "eastern longitude edge")
	for _, name := range []string{"south", "west", "north", "east"} {
		_ = regionCmd.MarkFlagRequired(name)
	}
	regionCmd.Flags().BoolVar(&regionJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(regionCmd)
}
