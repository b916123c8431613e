package export

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/billmap/internal/model"
)

// Shapefile attribute layout. dBASE field names are limited to 10 bytes.
var shapeFields = []shp.Field{
	shp.StringField("REGION", 64),
	shp.StringField("HASH", 32),
	shp.StringField("RESTAURANT", 120),
	shp.StringField("DATE", 19),
	shp.FloatField("TIP", 12, 2),
	shp.FloatField("DELIVERY", 12, 2),
	shp.FloatField("TOTAL", 12, 2),
}

const shapeDateLayout = "2006-01-02 15:04:05"

// WriteShapefile writes one point per bill (x = longitude, y = latitude)
// with its summary columns as attributes. path must end in .shp; the .shx
// and .dbf companions are written next to it.
func WriteShapefile(path string, t model.Table) error {
	if !strings.EqualFold(filepath.Ext(path), ".shp") {
		return eris.Errorf("export: shapefile path %s must end in .shp", path)
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	if err := writePoints(w, t); err != nil {
		w.Close()
		return err
	}
	w.Close()

	return fixDBFName(path)
}

func writePoints(w *shp.Writer, t model.Table) error {
	if err := w.SetFields(shapeFields); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	for _, r := range t {
		n := int(w.Write(&shp.Point{X: r.Longitude, Y: r.Latitude}))
		attrs := []any{
			clip(r.Region, 64),
			r.IdentityHash,
			clip(r.Restaurant, 120),
			r.Date.Format(shapeDateLayout),
			r.Tip.InexactFloat64(),
			r.DeliveryCharge.InexactFloat64(),
			r.Total.InexactFloat64(),
		}
		for i, v := range attrs {
			if err := w.WriteAttribute(n, i, v); err != nil {
				return eris.Wrapf(err, "export: write attribute %d of %s", i, r.IdentityHash)
			}
		}
	}

	return nil
}

// fixDBFName moves the attribute table go-shp writes as "<base>dbf" (no
// dot) to "<base>.dbf" so readers find it next to the .shp.
func fixDBFName(path string) error {
	base := path[:len(path)-len(filepath.Ext(path))]
	wrong := base + "dbf"
	if _, err := os.Stat(wrong); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "export: stat %s", wrong)
	}
	if err := os.Rename(wrong, base+".dbf"); err != nil {
		return eris.Wrapf(err, "export: rename %s", wrong)
	}
	return nil
}

// clip shortens s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
