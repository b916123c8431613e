// Package bills reads and writes region files: one JSON or YAML document per
// region holding a "bills" array.
package bills

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/billmap/internal/model"
)

// Format identifies the encoding of a region file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Region returns the region name for a file: its base name without extension.
func Region(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type rawDocument struct {
	Bills *[]rawBill `json:"bills" yaml:"bills"`
}

type rawBill struct {
	Date           *string    `json:"date" yaml:"date"`
	Restaurant     *string    `json:"restaurant" yaml:"restaurant"`
	Latitude       *float64   `json:"latitude" yaml:"latitude"`
	Longitude      *float64   `json:"longitude" yaml:"longitude"`
	Items          *[]rawItem `json:"items" yaml:"items"`
	Tip            *float64   `json:"tip" yaml:"tip"`
	DeliveryCharge *float64   `json:"delivery_charge" yaml:"delivery_charge"`
}

type rawItem struct {
	Name     *string  `json:"name" yaml:"name"`
	Price    *float64 `json:"price" yaml:"price"`
	Quantity *int     `json:"quantity" yaml:"quantity"`
}

// Load reads every region file in dir and returns their bills as one flat
// slice. Files are visited in name order and bills keep their order within
// a file. Any malformed file aborts the whole load with a *LoadError; no
// partial result is returned. A directory without region files yields an
// empty slice.
func Load(dir string) ([]model.Bill, error) {
	paths, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("component", "bills.loader"))

	var out []model.Bill
	for _, path := range paths {
		bills, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded region file",
			zap.String("path", path),
			zap.String("region", Region(path)),
			zap.Int("bills", len(bills)),
		)
		out = append(out, bills...)
	}
	if out == nil {
		out = []model.Bill{}
	}
	return out, nil
}

// Discover lists the region files in dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fileError(dir, eris.Wrap(err, "read dir"))
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatFor(e.Name()); !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// LoadFile reads one region file, tags each bill with the file's region and
// identity hash, and validates required fields.
func LoadFile(path string) ([]model.Bill, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, fileError(path, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, eris.Wrap(err, "read file"))
	}

	doc, err := decode(data, format)
	if err != nil {
		return nil, fileError(path, err)
	}
	if doc.Bills == nil {
		return nil, &LoadError{Path: path, Bill: -1, Field: "bills", Err: ErrMissingField}
	}

	region := Region(path)
	out := make([]model.Bill, 0, len(*doc.Bills))
	for i, raw := range *doc.Bills {
		b, err := convert(path, i, raw)
		if err != nil {
			return nil, err
		}
		b.Region = region
		b.IdentityHash = IdentityHash(b.Date, b.Restaurant)
		out = append(out, b)
	}
	return out, nil
}

func decode(data []byte, format Format) (rawDocument, error) {
	var doc rawDocument
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return doc, nil
			}
			return doc, eris.Wrap(err, "decode yaml")
		}
		// A region file holds exactly one document.
		var extra any
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return doc, eris.New("decode yaml: trailing document after bills")
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, eris.Wrap(err, "decode json")
		}
	}
	return doc, nil
}

func convert(path string, i int, raw rawBill) (model.Bill, error) {
	switch {
	case raw.Date == nil:
		return model.Bill{}, fieldError(path, i, "date", ErrMissingField)
	case raw.Restaurant == nil:
		return model.Bill{}, fieldError(path, i, "restaurant", ErrMissingField)
	case raw.Items == nil:
		return model.Bill{}, fieldError(path, i, "items", ErrMissingField)
	case raw.Latitude == nil:
		return model.Bill{}, fieldError(path, i, "latitude", ErrMissingField)
	case raw.Longitude == nil:
		return model.Bill{}, fieldError(path, i, "longitude", ErrMissingField)
	}
	if raw.Tip != nil && *raw.Tip < 0 {
		return model.Bill{}, fieldError(path, i, "tip", ErrInvalidValue)
	}
	if raw.DeliveryCharge != nil && *raw.DeliveryCharge < 0 {
		return model.Bill{}, fieldError(path, i, "delivery_charge", ErrInvalidValue)
	}

	items := make([]model.LineItem, 0, len(*raw.Items))
	for j, it := range *raw.Items {
		field := func(name string) string {
			return fmt.Sprintf("items[%d].%s", j, name)
		}
		switch {
		case it.Name == nil:
			return model.Bill{}, fieldError(path, i, field("name"), ErrMissingField)
		case it.Price == nil:
			return model.Bill{}, fieldError(path, i, field("price"), ErrMissingField)
		case *it.Price < 0:
			return model.Bill{}, fieldError(path, i, field("price"), ErrInvalidValue)
		case it.Quantity != nil && *it.Quantity < 1:
			return model.Bill{}, fieldError(path, i, field("quantity"), ErrInvalidValue)
		}
		items = append(items, model.LineItem{
			Name:     *it.Name,
			Price:    *it.Price,
			Quantity: it.Quantity,
		})
	}

	return model.Bill{
		Date:           *raw.Date,
		Restaurant:     *raw.Restaurant,
		Latitude:       *raw.Latitude,
		Longitude:      *raw.Longitude,
		Items:          items,
		Tip:            raw.Tip,
		DeliveryCharge: raw.DeliveryCharge,
	}, nil
}
