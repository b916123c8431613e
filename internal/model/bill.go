package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultQuantity is the quantity assumed for a line item that omits it.
const DefaultQuantity = 1

// Document is the on-disk layout of one region file.
type Document struct {
	Bills []Bill `json:"bills" yaml:"bills"`
}

// Bill is one purchase event as stored in a region file.
type Bill struct {
	Region       string `json:"-" yaml:"-"` // base name of the source file
	IdentityHash string `json:"-" yaml:"-"` // hex digest of Date + Restaurant

	Date           string     `json:"date" yaml:"date"`
	Restaurant     string     `json:"restaurant" yaml:"restaurant"`
	Latitude       float64    `json:"latitude" yaml:"latitude"`
	Longitude      float64    `json:"longitude" yaml:"longitude"`
	Items          []LineItem `json:"items" yaml:"items"`
	Tip            *float64   `json:"tip,omitempty" yaml:"tip,omitempty"`
	DeliveryCharge *float64   `json:"delivery_charge,omitempty" yaml:"delivery_charge,omitempty"`
}

// LineItem is one purchased product line of a Bill.
type LineItem struct {
	Name     string  `json:"name" yaml:"name"`
	Price    float64 `json:"price" yaml:"price"`
	Quantity *int    `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Row is the tabular projection of a bill: scalar fields only, with every
// optional value resolved. Money columns are rounded to cents.
type Row struct {
	Region         string          `json:"region"`
	IdentityHash   string          `json:"identity_hash"`
	Restaurant     string          `json:"restaurant"`
	Date           time.Time       `json:"date"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Tip            decimal.Decimal `json:"tip"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Total          decimal.Decimal `json:"total"`
}

// Table holds one Row per bill. It does not own the line items; those are
// reachable through an Index keyed by IdentityHash.
type Table []Row

// Line is a LineItem with its quantity default applied.
type Line struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Total returns price × quantity.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Receipt is a fully resolved bill: the row plus its lines.
type Receipt struct {
	Row
	Lines []Line
}

// Index maps an identity hash to the receipt it was derived from.
type Index map[string]*Receipt

// Len returns the number of rows.
func (t Table) Len() int { return len(t) }

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool { return len(t) == 0 }

// Hashes returns the identity hash of every row, in table order.
func (t Table) Hashes() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.IdentityHash
	}
	return out
}
