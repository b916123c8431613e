package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/sells-group/billmap/internal/dashboard"
	"github.com/sells-group/billmap/internal/model"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatPanel writes the metric tiles, one per line.
func formatPanel(out io.Writer, count int, p dashboard.Panel) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Bills:\t%d\n", count)
	for _, m := range []dashboard.Metric{p.TotalPrice, p.MeanPrice, p.MeanTip} {
		if m.Delta != "" {
			_, _ = fmt.Fprintf(w, "%s:\t%s\t(%s vs overall)\n", m.Label, m.Value, m.Delta)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s:\t%s\n", m.Label, m.Value)
	}
	_ = w.Flush()
}

// formatRows writes a tabular list of bills to out.
func formatRows(out io.Writer, t model.Table) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "HASH\tREGION\tRESTAURANT\tDATE\tTOTAL")
	_, _ = fmt.Fprintln(w, "----\t------\t----------\t----\t-----")

	for _, r := range t {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.IdentityHash,
			r.Region,
			truncate(r.Restaurant, 30),
			r.Date.Format("2006-01-02 15:04"),
			r.Total.StringFixed(2),
		)
	}
	_ = w.Flush()
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
