package dashboard

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/billmap/internal/stats"
)

// Delta colour modes for a metric.
const (
	DeltaNormal  = "normal"
	DeltaInverse = "inverse"
	DeltaOff     = "off"
)

// Metric is one tile of the metrics panel.
type Metric struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Delta      string `json:"delta,omitempty"`
	DeltaColor string `json:"delta_color"`
}

// Panel is the three-metric row shown above and below the map.
type Panel struct {
	TotalPrice Metric `json:"total_price"`
	MeanPrice  Metric `json:"mean_price"`
	MeanTip    Metric `json:"mean_tip"`
}

// Printer formats money for the metrics panel in a display locale.
type Printer struct {
	symbol string
	p      *message.Printer
}

// NewPrinter creates a Printer for a BCP 47 locale such as "en-GB".
func NewPrinter(locale, symbol string) (*Printer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, eris.Wrapf(err, "dashboard: parse locale %q", locale)
	}
	return &Printer{symbol: symbol, p: message.NewPrinter(tag)}, nil
}

// Money formats v with the currency symbol and two decimals.
func (p *Printer) Money(v decimal.Decimal) string {
	return p.symbol + p.number(v)
}

func (p *Printer) number(v decimal.Decimal) string {
	return p.p.Sprintf("%.2f", v.Round(2).InexactFloat64())
}

// Overall builds the panel for the full dataset. No metric carries a delta.
func (p *Printer) Overall(s stats.Summary) Panel {
	return Panel{
		TotalPrice: p.metric("Total price", s.SumTotal),
		MeanPrice:  p.metric("Mean price", s.MeanTotal),
		MeanTip:    p.metric("Mean tip", s.MeanTip),
	}
}

// Regional builds the panel for a filtered region. Mean price carries the
// difference to the overall mean with inverse colouring; the delta is
// dropped when it rounds to zero or the region has a zero mean.
func (p *Printer) Regional(region, overall stats.Summary) Panel {
	panel := p.Overall(region)

	delta := region.MeanTotal.Sub(overall.MeanTotal).Round(2)
	if delta.IsZero() || region.MeanTotal.IsZero() {
		panel.MeanPrice.DeltaColor = DeltaOff
		return panel
	}
	panel.MeanPrice.Delta = p.number(delta)
	panel.MeanPrice.DeltaColor = DeltaInverse
	return panel
}

func (p *Printer) metric(label string, v decimal.Decimal) Metric {
	return Metric{Label: label, Value: p.Money(v), DeltaColor: DeltaNormal}
}
