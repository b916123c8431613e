package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/billmap/internal/export"
)

var (
	exportXLSXOut string
	exportShpOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the bill table to other formats",
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write bills and line items to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		if err := export.WriteXLSX(exportXLSXOut, ds.Table, ds.Index); err != nil {
			return err
		}
		zap.L().Info("exported workbook", zap.String("path", exportXLSXOut), zap.Int("bills", len(ds.Table)))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bills to %s\n", len(ds.Table), exportXLSXOut)
		return nil
	},
}

var exportShpCmd = &cobra.Command{
	Use:   "shp",
	Short: "Write one point per bill to an ESRI shapefile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context())
		if err != nil {
			return err
		}
		if err := export.WriteShapefile(exportShpOut, ds.Table); err != nil {
			return err
		}
		zap.L().Info("exported shapefile", zap.String("path", exportShpOut), zap.Int("bills", len(ds.Table)))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bills to %s\n", len(ds.Table), exportShpOut)
		return nil
	},
}

func init() {
	exportXLSXCmd.Flags().StringVar(&exportXLSXOut, "out", "bills.xlsx", "output workbook path")
	exportShpCmd.Flags().StringVar(&exportShpOut, "out", "bills.shp", "output shapefile path (.shp)")
	exportCmd.AddCommand(exportXLSXCmd, exportShpCmd)
	rootCmd.AddCommand(exportCmd)
}
