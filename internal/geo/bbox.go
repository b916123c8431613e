// Package geo provides the bounding-box filter and map extent for bill coordinates.
package geo

import (
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/billmap/internal/model"
)

// BBox is a latitude/longitude box as reported by the map widget. All four
// edges are inclusive. A box whose south edge lies north of its north edge
// (or west of east reversed) contains nothing; antimeridian wrap is not
// interpreted.
type BBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Bounds returns the box as XY (longitude, latitude) bounds.
func (b BBox) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(b.West, b.South, b.East, b.North)
}

// Contains reports whether the point lies inside or on the edge of the box.
func (b BBox) Contains(lat, lng float64) bool {
	return b.Bounds().OverlapsPoint(geom.XY, geom.Coord{lng, lat})
}

// Filter returns the rows whose coordinates fall inside the box, in table
// order. The input table is left untouched.
func Filter(t model.Table, b BBox) model.Table {
	bounds := b.Bounds()
	out := make(model.Table, 0, len(t))
	for _, r := range t {
		if bounds.OverlapsPoint(geom.XY, geom.Coord{r.Longitude, r.Latitude}) {
			out = append(out, r)
		}
	}
	return out
}

// ParseBBox parses the four edges from their decimal string form. NaN and
// infinite edges are rejected.
func ParseBBox(south, west, north, east string) (BBox, error) {
	var b BBox
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"south", south, &b.South},
		{"west", west, &b.West},
		{"north", north, &b.North},
		{"east", east, &b.East},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return BBox{}, eris.Wrapf(err, "geo: parse %s edge %q", f.name, f.raw)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return BBox{}, eris.Errorf("geo: parse %s edge %q: not a finite number", f.name, f.raw)
		}
		*f.dst = v
	}
	return b, nil
}
