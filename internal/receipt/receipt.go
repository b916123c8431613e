// Package receipt renders a bill as a fixed-width text receipt for a map popup.
package receipt

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/billmap/internal/model"
)

//go:embed templates/receipt.html.tmpl
var templateFS embed.FS

const (
	// DefaultFiller pads item rows and draws the separator.
	DefaultFiller = '-'
	// SummaryFiller is a no-break space; it right-aligns the Tip, Delivery
	// and Total rows.
	SummaryFiller = '\u00a0'

	currencySymbol = "$"
	dateLayout     = "02/01/2006"
)

// View is the data handed to the receipt template. Tip and Delivery are
// empty when the bill has none; Total is always set.
type View struct {
	Restaurant string
	Date       string
	Separator  string
	Items      []string
	Tip        string
	Delivery   string
	Total      string
}

// Formatter renders receipts. It holds no per-receipt state and is safe to
// reuse.
type Formatter struct {
	filler  rune
	padding int
	tmpl    *template.Template
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithFiller sets the glyph used for item-row alignment and the separator.
func WithFiller(r rune) Option {
	return func(f *Formatter) { f.filler = r }
}

// WithPadding sets the minimum gap between item names and prices.
func WithPadding(n int) Option {
	return func(f *Formatter) { f.padding = n }
}

// New creates a Formatter backed by the embedded receipt template.
func New(opts ...Option) (*Formatter, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/receipt.html.tmpl")
	if err != nil {
		return nil, eris.Wrap(err, "receipt: parse template")
	}
	f := &Formatter{
		filler:  DefaultFiller,
		padding: DefaultPadding,
		tmpl:    tmpl,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// View lays out the receipt rows without rendering the template.
func (f *Formatter) View(r *model.Receipt) View {
	w := Measure(r.Lines, f.padding)
	width := w.LineLength()

	v := View{
		Restaurant: r.Restaurant,
		Date:       r.Date.Format(dateLayout),
		Separator:  padRight("", width, f.filler),
		Items:      make([]string, 0, len(r.Lines)),
	}

	for _, l := range r.Lines {
		qty := fmt.Sprintf("%0*d", w.Quantity, l.Quantity)
		name := padRight(l.Name, w.Name+w.Padding, f.filler)
		price := padLeft(currencySymbol+amount(l.Total()), w.Price+4, f.filler)
		v.Items = append(v.Items, qty+"x "+name+price)
	}

	if !r.Tip.IsZero() {
		v.Tip = summaryLine("Tip", r.Tip, width)
	}
	if !r.DeliveryCharge.IsZero() {
		v.Delivery = summaryLine("Delivery", r.DeliveryCharge, width)
	}
	v.Total = summaryLine("Total", r.Total, width)

	return v
}

// Format renders the receipt as an HTML fragment.
func (f *Formatter) Format(r *model.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, f.View(r)); err != nil {
		return "", eris.Wrapf(err, "receipt: render %s", r.IdentityHash)
	}
	return buf.String(), nil
}

// summaryLine right-aligns " Label: $x.xx" to width. A line that is already
// wider is left as is.
func summaryLine(label string, v decimal.Decimal, width int) string {
	return padLeft(" "+label+": "+currencySymbol+amount(v), width, SummaryFiller)
}

func amount(v decimal.Decimal) string {
	return v.StringFixed(2)
}
