package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var popupCmd = &cobra.Command{
	Use:   "popup <identity-hash>",
	Short: "Render the receipt popup for one bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		f, err := newFormatter()
		if err != nil {
			return err
		}

		html, err := ds.Popup(f, args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(popupCmd)
}
