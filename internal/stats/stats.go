// Package stats computes the summary metrics shown for a bill table.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/billmap/internal/model"
)

// Summary holds the aggregate metrics for a table.
type Summary struct {
	Count     int             `json:"count"`
	MeanTotal decimal.Decimal `json:"mean_total"`
	MeanTip   decimal.Decimal `json:"mean_tip"`
	SumTotal  decimal.Decimal `json:"sum_total"`
}

// Summarize returns the mean total, mean tip and summed total of the table.
// An empty table yields the zero summary rather than dividing by zero.
func Summarize(t model.Table) Summary {
	if len(t) == 0 {
		return Summary{MeanTotal: decimal.Zero, MeanTip: decimal.Zero, SumTotal: decimal.Zero}
	}

	sumTotal := decimal.Zero
	sumTip := decimal.Zero
	for _, r := range t {
		sumTotal = sumTotal.Add(r.Total)
		sumTip = sumTip.Add(r.Tip)
	}

	n := decimal.NewFromInt(int64(len(t)))
	return Summary{
		Count:     len(t),
		MeanTotal: sumTotal.Div(n),
		MeanTip:   sumTip.Div(n),
		SumTotal:  sumTotal,
	}
}

// Triple returns (mean total, mean tip, sum total) as floats.
func (s Summary) Triple() (meanTotal, meanTip, sumTotal float64) {
	return s.MeanTotal.InexactFloat64(), s.MeanTip.InexactFloat64(), s.SumTotal.InexactFloat64()
}

// IsEmpty reports whether the summary was computed over no rows.
func (s Summary) IsEmpty() bool {
	return s.Count == 0
}
