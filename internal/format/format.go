// Package format renders values the way the fleet screens show them:
// Brazilian currency and dates, signed measurement differences.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukydev/fleet-maintenance/internal/report"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol = "R$"
	dateLayout     = "02/01/2006"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats v as Brazilian reais, e.g. "R$ 1.234,50" or "-R$ 50,50".
func Currency(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	f, _ := v.Float64()
	return sign + currencySymbol + " " + printer.Sprintf("%.2f", f)
}

// Date renders a service or measurement date as dd/mm/yyyy. Values that do
// not parse are returned trimmed, and an empty value renders as "-".
func Date(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	d, ok := report.ParseDay(value)
	if !ok {
		return value
	}
	return d.Format(dateLayout)
}

// Trend classifies a measurement difference.
type Trend int

const (
	Neutral Trend = iota
	Positive
	Negative
)

func (t Trend) String() string {
	switch t {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// Difference renders an after-minus-before delta with two decimals and an
// explicit sign, e.g. "+15.00", "-10.00" or "0.00". The trend follows the
// rounded value.
func Difference(d decimal.Decimal) (string, Trend) {
	r := d.Round(2)
	switch r.Sign() {
	case 1:
		return "+" + r.StringFixed(2), Positive
	case -1:
		return r.StringFixed(2), Negative
	default:
		return "0.00", Neutral
	}
}

// Measure appends unit to a rendered difference when one is configured.
func Measure(d decimal.Decimal, unit string) (string, Trend) {
	s, trend := Difference(d)
	if unit = strings.TrimSpace(unit); unit != "" {
		s += " " + unit
	}
	return s, trend
}
