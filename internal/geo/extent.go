package geo

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/billmap/internal/model"
)

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// View is where the map should be centred and which box it should fit.
type View struct {
	Center Point `json:"center"`
	Bounds BBox  `json:"bounds"`
}

// Extent returns the map view for a table: centred on the mean coordinate
// and fitted to the min/max box of all rows. ok is false for an empty
// table, in which case the map keeps its default view.
func Extent(t model.Table) (view View, ok bool) {
	if len(t) == 0 {
		return View{}, false
	}

	bounds := geom.NewBounds(geom.XY)
	var sumLat, sumLng float64
	for _, r := range t {
		bounds.Extend(geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}))
		sumLat += r.Latitude
		sumLng += r.Longitude
	}

	n := float64(len(t))
	return View{
		Center: Point{Lat: sumLat / n, Lng: sumLng / n},
		Bounds: BBox{
			South: bounds.Min(1),
			West:  bounds.Min(0),
			North: bounds.Max(1),
			East:  bounds.Max(0),
		},
	}, true
}
