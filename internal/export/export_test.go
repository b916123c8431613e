package export

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/billmap/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleTable() (model.Table, model.Index) {
	cafe := &model.Receipt{
		Row: model.Row{
			Region:       "london",
			IdentityHash: "0a1b2c3d4e5f60718293a4b5c6d7e8f9",
			Restaurant:   "Cafe A",
			Date:         time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Latitude:     51.5,
			Longitude:    -0.12,
			Tip:          dec("1"),
			Total:        dec("6"),
		},
		Lines: []model.Line{{Name: "Tea", Price: dec("2.5"), Quantity: 2}},
	}
	dishoom := &model.Receipt{
		Row: model.Row{
			Region:         "london",
			IdentityHash:   "ffeeddccbbaa99887766554433221100",
			Restaurant:     "Dishoom",
			Date:           time.Date(2024, 2, 10, 19, 30, 0, 0, time.UTC),
			Latitude:       51.52,
			Longitude:      -0.10,
			Tip:            dec("2"),
			DeliveryCharge: dec("2.5"),
			Total:          dec("18.5"),
		},
		Lines: []model.Line{
			{Name: "Chai", Price: dec("3.2"), Quantity: 3},
			{Name: "Naan", Price: dec("4.4"), Quantity: 1},
		},
	}

	t := model.Table{cafe.Row, dishoom.Row}
	idx := model.Index{cafe.IdentityHash: cafe, dishoom.IdentityHash: dishoom}
	return t, idx
}
