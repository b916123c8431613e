// Package export writes the aggregated bill table to spreadsheet and GIS
// formats.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/billmap/internal/model"
)

// Sheet names used by WriteXLSX.
const (
	BillsSheet = "bills"
	ItemsSheet = "items"
)

const moneyFormat = "0.00"

var billHeader = []string{
	"region", "identity_hash", "restaurant", "date",
	"latitude", "longitude", "tip", "delivery_charge", "total",
}

var itemHeader = []string{
	"identity_hash", "restaurant", "item", "price", "quantity", "line_total",
}

// WriteXLSX writes one row per bill to the bills sheet and, when idx is
// non-nil, one row per line item to the items sheet.
func WriteXLSX(path string, t model.Table, idx model.Index) error {
	f := xlsx.NewFile()

	bills, err := f.AddSheet(BillsSheet)
	if err != nil {
		return eris.Wrap(err, "export: add bills sheet")
	}
	addHeader(bills, billHeader)
	for _, r := range t {
		row := bills.AddRow()
		row.AddCell().SetString(r.Region)
		row.AddCell().SetString(r.IdentityHash)
		row.AddCell().SetString(r.Restaurant)
		row.AddCell().SetDateTime(r.Date)
		row.AddCell().SetFloat(r.Latitude)
		row.AddCell().SetFloat(r.Longitude)
		row.AddCell().SetFloatWithFormat(r.Tip.InexactFloat64(), moneyFormat)
		row.AddCell().SetFloatWithFormat(r.DeliveryCharge.InexactFloat64(), moneyFormat)
		row.AddCell().SetFloatWithFormat(r.Total.InexactFloat64(), moneyFormat)
	}

	if idx != nil {
		items, err := f.AddSheet(ItemsSheet)
		if err != nil {
			return eris.Wrap(err, "export: add items sheet")
		}
		addHeader(items, itemHeader)

		// Colliding rows share one receipt; list its items once.
		seen := make(map[string]bool, len(idx))
		for _, r := range t {
			rec, ok := idx[r.IdentityHash]
			if !ok || seen[r.IdentityHash] {
				continue
			}
			seen[r.IdentityHash] = true
			for _, l := range rec.Lines {
				row := items.AddRow()
				row.AddCell().SetString(rec.IdentityHash)
				row.AddCell().SetString(rec.Restaurant)
				row.AddCell().SetString(l.Name)
				row.AddCell().SetFloatWithFormat(l.Price.InexactFloat64(), moneyFormat)
				row.AddCell().SetInt(l.Quantity)
				row.AddCell().SetFloatWithFormat(l.Total().Round(2).InexactFloat64(), moneyFormat)
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, cols []string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}
