package brokerimport

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyArithmetic(t *testing.T) {
	a := M(10.35, "EUR")
	b := M(2.59, "EUR")

	if got := a.Sub(b); !got.Equal(M(7.76, "EUR")) {
		t.Errorf("Sub = %s, want 7.76 EUR", got)
	}
	if got := a.Add(b); !got.Equal(M(12.94, "EUR")) {
		t.Errorf("Add = %s, want 12.94 EUR", got)
	}
	if got := M(600, "EUR").Mul(Q(3)); !got.Equal(M(1800, "EUR")) {
		t.Errorf("Mul = %s, want 1800 EUR", got)
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// the zero Money is a neutral element for Add, whatever the currency.
	var zero Money
	if got := zero.Add(M(5, "CHF")); got.Currency() != "CHF" {
		t.Errorf("zero.Add currency = %q, want CHF", got.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("adding EUR to USD should panic")
		}
	}()
	M(1, "EUR").Add(M(1, "USD"))
}

func TestMoneyMulRate(t *testing.T) {
	rate := decimal.NewFromFloat(1.1971)
	got := M(10.35, "EUR").MulRate(rate, "USD")
	if got.Currency() != "USD" {
		t.Fatalf("MulRate currency = %q, want USD", got.Currency())
	}
	diff := got.Sub(M(12.39, "USD")).Abs()
	if diff.Amount().GreaterThan(decimal.New(1, -2)) {
		t.Errorf("MulRate = %s, want about 12.39 USD", got)
	}
}

func TestMoneyRound(t *testing.T) {
	if got := M(12.389985, "USD").Round(); !got.Equal(M(12.39, "USD")) {
		t.Errorf("Round = %s, want 12.39 USD", got)
	}
	if got := M(12.39, "USD").MinorUnits(); got != 1239 {
		t.Errorf("MinorUnits = %d, want 1239", got)
	}
}
