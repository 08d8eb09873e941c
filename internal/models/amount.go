package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a numeric field the backend may send as a JSON number, a numeric
// string (Postgres NUMERIC columns) or null. Anything that does not parse as a
// number decodes to zero so sums never go NaN.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a float.
func NewAmount(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.TrimSpace(strings.Trim(raw, `"`))
	if raw == "" || raw == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Dec returns the underlying decimal.
func (a Amount) Dec() decimal.Decimal {
	return a.Decimal
}
