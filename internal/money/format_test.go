package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"100", "100,00"},
		{"1234.5", "1.234,50"},
		{"3000", "3.000,00"},
		{"0.005", "0,01"},
		{"1234567.891", "1.234.567,89"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := Number(decimal.RequireFromString(c.in)); got != c.want {
				t.Errorf("Number(%s) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestWithSymbol(t *testing.T) {
	if got := WithSymbol(decimal.RequireFromString("100"), "$"); got != "100,00 $" {
		t.Errorf("unexpected output %q", got)
	}
	if got := WithSymbol(decimal.RequireFromString("100"), ""); got != "100,00" {
		t.Errorf("unexpected output without symbol %q", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(decimal.RequireFromString("10.125")); !got.Equal(decimal.RequireFromString("10.13")) {
		t.Errorf("expected 10.13, got %s", got)
	}
}
