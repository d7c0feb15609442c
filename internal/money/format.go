// Package money renders decimal amounts for people. Ledger arithmetic never
// goes through here; rounding to two places happens only at this edge.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits shown to users.
const Places = 2

// trFormatter matches the tr-TR "N2" layout: dot thousands, comma decimals.
var trFormatter = gomoney.NewFormatter(Places, ",", ".", "", "1")

// minor converts d to rounded minor units.
func minor(d decimal.Decimal) int64 {
	return d.Shift(Places).Round(0).IntPart()
}

// Number formats d with two decimals and Turkish separators, e.g. 1.234,50.
func Number(d decimal.Decimal) string {
	return trFormatter.Format(minor(d))
}

// WithSymbol formats d followed by the currency symbol, e.g. 1.234,50 ₺.
func WithSymbol(d decimal.Decimal, symbol string) string {
	if symbol == "" {
		return Number(d)
	}
	f := gomoney.NewFormatter(Places, ",", ".", symbol, "1 $")
	return f.Format(minor(d))
}

// Round returns d rounded half away from zero to the display precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}
