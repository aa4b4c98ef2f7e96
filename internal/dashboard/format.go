package dashboard

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"campaignpulse/pkg/contracts/domain"
)

// Formatter renders numbers the way the dashboard displays them. Counts
// and currency carry no fraction, percentages at most one fraction digit,
// ratios exactly two.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter returns an en-US formatter for the ISO 4217 code. Unknown
// or empty codes fall back to USD.
func NewFormatter(code string) *Formatter {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		unit = currency.USD
	}

	symbol := "$"
	if unit != currency.USD {
		symbol = unit.String() + " "
	}

	return &Formatter{
		printer: message.NewPrinter(language.AmericanEnglish),
		symbol:  symbol,
	}
}

// DefaultFormatter formats US dollars.
func DefaultFormatter() *Formatter {
	return NewFormatter("USD")
}

// Count formats a grouped whole number: 12345.6 -> "12,346".
func (f *Formatter) Count(v float64) string {
	return f.decimal(v, 0)
}

// Currency formats a grouped whole amount: -50 -> "-$50".
func (f *Formatter) Currency(v float64) string {
	r := roundHalfAway(v, 0)
	if r < 0 {
		return "-" + f.symbol + f.decimal(-r, 0)
	}
	return f.symbol + f.decimal(r, 0)
}

// Percent formats a percentage-as-number: 3.5 -> "3.5%", 12 -> "12%".
func (f *Formatter) Percent(v float64) string {
	return f.decimal(v, 1) + "%"
}

// Ratio formats with exactly two fraction digits and no grouping.
func (f *Formatter) Ratio(v float64) string {
	return strconv.FormatFloat(normalizeZero(v), 'f', 2, 64)
}

// Format dispatches on the value kind. Unknown kinds format as ratios.
func (f *Formatter) Format(kind domain.ValueKind, v float64) string {
	switch kind {
	case domain.KindCount:
		return f.Count(v)
	case domain.KindCurrency:
		return f.Currency(v)
	case domain.KindPercent:
		return f.Percent(v)
	default:
		return f.Ratio(v)
	}
}

func (f *Formatter) decimal(v float64, digits int) string {
	r := roundHalfAway(v, digits)
	return f.printer.Sprint(number.Decimal(r, number.MaxFractionDigits(digits)))
}

// roundHalfAway rounds to the given fraction digits, halves away from
// zero. Negative zero collapses to zero so "-0" is never displayed.
func roundHalfAway(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow10(digits)
	return normalizeZero(math.Round(v*p) / p)
}

func normalizeZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
