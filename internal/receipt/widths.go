package receipt

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/billmap/internal/model"
)

// DefaultPadding is the minimum gap between the longest item name and its price.
const DefaultPadding = 2

// fixedWidth covers the constant parts of an item row: "x ", "$" and ".00".
const fixedWidth = 6

// Widths are the column widths of one receipt, derived from its lines.
type Widths struct {
	Name     int // longest item name, in runes
	Price    int // longest integer part of a line total
	Quantity int // longest quantity, in digits
	Padding  int
}

// Measure computes the column widths for a set of lines.
func Measure(lines []model.Line, padding int) Widths {
	w := Widths{Padding: padding}
	for _, l := range lines {
		w.Name = max(w.Name, utf8.RuneCountInString(l.Name))
		w.Price = max(w.Price, integerDigits(amount(l.Total())))
		w.Quantity = max(w.Quantity, len(strconv.Itoa(l.Quantity)))
	}
	return w
}

// LineLength is the width every row of the receipt is laid out to.
func (w Widths) LineLength() int {
	return w.Name + w.Price + w.Quantity + w.Padding + fixedWidth
}

// integerDigits returns the length of the part before the decimal point of
// a two-decimal amount string.
func integerDigits(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return i
	}
	return len(s)
}

func padRight(s string, width int, fill rune) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(string(fill), n)
}

func padLeft(s string, width int, fill rune) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(fill), n) + s
}
