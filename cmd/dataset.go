package main

import (
	"context"

	"github.com/sells-group/billmap/internal/dashboard"
	"github.com/sells-group/billmap/internal/receipt"
)

// loadDataset builds the dataset for the configured bills directory.
func loadDataset(ctx context.Context) (*dashboard.Dataset, error) {
	return dashboard.Build(ctx, cfg.Bills.Dir)
}

func newFormatter() (*receipt.Formatter, error) {
	return receipt.New(receipt.WithFiller(cfg.Receipt.FillerRune()))
}

func newPrinter() (*dashboard.Printer, error) {
	return dashboard.NewPrinter(cfg.Display.Locale, cfg.Display.CurrencySymbol)
}
