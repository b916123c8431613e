// Package aggregate turns loaded bills into the tabular dataset and the
// identity-hash index used for popups.
package aggregate

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/billmap/internal/model"
)

// Result is the output of one aggregation pass.
type Result struct {
	Table model.Table
	Index model.Index
}

// Aggregate resolves every bill: it parses the date, applies the quantity,
// tip and delivery defaults, and computes the total as
// tip + delivery_charge + Σ(price × quantity), rounded to cents.
//
// The input is not modified. A malformed date aborts the whole pass with a
// *ParseError. Empty input yields an empty table and index.
func Aggregate(bills []model.Bill) (*Result, error) {
	res := &Result{
		Table: make(model.Table, 0, len(bills)),
		Index: make(model.Index, len(bills)),
	}

	for _, b := range bills {
		rec, err := Resolve(b)
		if err != nil {
			return nil, err
		}
		if _, dup := res.Index[rec.IdentityHash]; dup {
			zap.L().Warn("aggregate: identity hash collision, later bill wins the index",
				zap.String("component", "aggregate"),
				zap.String("identity_hash", rec.IdentityHash),
				zap.String("restaurant", rec.Restaurant),
				zap.String("region", rec.Region),
			)
		}
		res.Table = append(res.Table, rec.Row)
		res.Index[rec.IdentityHash] = rec
	}

	return res, nil
}

// Resolve builds the receipt for a single bill.
func Resolve(b model.Bill) (*model.Receipt, error) {
	at, err := ParseDate(b.Date)
	if err != nil {
		return nil, &ParseError{
			Region:       b.Region,
			IdentityHash: b.IdentityHash,
			Value:        b.Date,
			Err:          err,
		}
	}

	tip := amount(b.Tip)
	delivery := amount(b.DeliveryCharge)

	lines := make([]model.Line, 0, len(b.Items))
	total := tip.Add(delivery)
	for _, it := range b.Items {
		qty := model.DefaultQuantity
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		line := model.Line{
			Name:     it.Name,
			Price:    decimal.NewFromFloat(it.Price),
			Quantity: qty,
		}
		total = total.Add(line.Total())
		lines = append(lines, line)
	}

	return &model.Receipt{
		Row: model.Row{
			Region:         b.Region,
			IdentityHash:   b.IdentityHash,
			Restaurant:     b.Restaurant,
			Date:           at,
			Latitude:       b.Latitude,
			Longitude:      b.Longitude,
			Tip:            tip.Round(2),
			DeliveryCharge: delivery.Round(2),
			Total:          total.Round(2),
		},
		Lines: lines,
	}, nil
}

func amount(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
