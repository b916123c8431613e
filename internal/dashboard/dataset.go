// Package dashboard wires the loader, aggregator, statistics, geo filter and
// receipt formatter into the dataset the map dashboard renders.
package dashboard

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billmap/internal/aggregate"
	"github.com/sells-group/billmap/internal/bills"
	"github.com/sells-group/billmap/internal/geo"
	"github.com/sells-group/billmap/internal/model"
	"github.com/sells-group/billmap/internal/receipt"
	"github.com/sells-group/billmap/internal/stats"
)

// ErrUnknownBill is returned when a popup is requested for an identity hash
// that is not in the index.
var ErrUnknownBill = eris.New("dashboard: unknown bill")

// Dataset is the aggregated table and popup index for one bills directory.
// It is read-only once built.
type Dataset struct {
	Table model.Table
	Index model.Index
}

// Region is the slice of the dataset inside a bounding box.
type Region struct {
	BBox    geo.BBox      `json:"bbox"`
	Table   model.Table   `json:"rows"`
	Summary stats.Summary `json:"summary"`
}

// Marker is one map pin.
type Marker struct {
	IdentityHash string  `json:"identity_hash"`
	Restaurant   string  `json:"restaurant"`
	Region       string  `json:"region"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

// Build loads every region file in dir and aggregates the bills. Any load
// or parse error aborts the build; no partial dataset is returned.
func Build(ctx context.Context, dir string) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "dashboard: build")
	}

	loaded, err := bills.Load(dir)
	if err != nil {
		return nil, err
	}

	res, err := aggregate.Aggregate(loaded)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("dashboard: dataset built",
		zap.String("component", "dashboard"),
		zap.String("dir", dir),
		zap.Int("bills", len(loaded)),
		zap.Int("indexed", len(res.Index)),
	)

	return &Dataset{Table: res.Table, Index: res.Index}, nil
}

// Summary returns the metrics over the whole table.
func (d *Dataset) Summary() stats.Summary {
	return stats.Summarize(d.Table)
}

// Region filters the table to the box and summarizes the result.
func (d *Dataset) Region(b geo.BBox) Region {
	rows := geo.Filter(d.Table, b)
	return Region{BBox: b, Table: rows, Summary: stats.Summarize(rows)}
}

// View returns the initial map view. ok is false when there are no bills.
func (d *Dataset) View() (geo.View, bool) {
	return geo.Extent(d.Table)
}

// Markers returns one marker per table row, in table order.
func (d *Dataset) Markers() []Marker {
	out := make([]Marker, 0, len(d.Table))
	for _, r := range d.Table {
		out = append(out, Marker{
			IdentityHash: r.IdentityHash,
			Restaurant:   r.Restaurant,
			Region:       r.Region,
			Lat:          r.Latitude,
			Lng:          r.Longitude,
		})
	}
	return out
}

// Receipt looks up the resolved bill behind a marker.
func (d *Dataset) Receipt(hash string) (*model.Receipt, error) {
	r, ok := d.Index[hash]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownBill, "dashboard: identity hash %s", hash)
	}
	return r, nil
}

// Popup renders the receipt for the bill with the given identity hash.
func (d *Dataset) Popup(f *receipt.Formatter, hash string) (string, error) {
	r, err := d.Receipt(hash)
	if err != nil {
		return "", err
	}
	return f.Format(r)
}
