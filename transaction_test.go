package brokerimport

import (
	"testing"
	"time"
)

func tradeUnits(gross, tax, fee float64, currency string) []Unit {
	units := []Unit{NewUnit(GrossValue, M(gross, currency))}
	if tax != 0 {
		units = append(units, NewUnit(Tax, M(tax, currency)))
	}
	if fee != 0 {
		units = append(units, NewUnit(Fee, M(fee, currency)))
	}
	return units
}

func TestMonetaryAmount(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		name string
		typ  TxType
		want Money
	}{
		// an outflow pays gross plus taxes and fees.
		{name: "buy", typ: TxBuy, want: M(115, "EUR")},
		{name: "withdrawal", typ: TxWithdrawal, want: M(115, "EUR")},
		// an inflow credits gross minus taxes and fees.
		{name: "dividend", typ: TxDividend, want: M(85, "EUR")},
		{name: "sell", typ: TxSell, want: M(85, "EUR")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := NewAccountTransaction(tc.typ, date, nil, Quantity{}, tradeUnits(100, 10, 5, "EUR"), "", "test")
			if got := tx.MonetaryAmount(); !got.Equal(tc.want) {
				t.Errorf("MonetaryAmount() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNewBuySellEntry(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	sec, err := NewSecurity("DE0007236101", "723610", "", "Siemens", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	units := tradeUnits(1800, 0, 0, "EUR")

	if _, err := NewBuySellEntry(TxDividend, date, sec, Q(3), units, "", "test"); err == nil {
		t.Error("a dividend must not build a paired entry")
	}
	if _, err := NewBuySellEntry(TxBuy, date, nil, Q(3), units, "", "test"); err == nil {
		t.Error("a trade without a security must be rejected")
	}
	if _, err := NewBuySellEntry(TxBuy, date, sec, Q(0), units, "", "test"); err == nil {
		t.Error("a trade with zero shares must be rejected")
	}

	e, err := NewBuySellEntry(TxBuy, date, sec, Q(3), units, "", "test")
	if err != nil {
		t.Fatalf("NewBuySellEntry failed: %v", err)
	}
	if !e.Portfolio.Date.Equal(e.Account.Date) || !e.Portfolio.Shares.Equal(e.Account.Shares) {
		t.Error("both sides of the entry must share date and shares")
	}
	if !e.MonetaryAmount().Equal(M(1800, "EUR")) {
		t.Errorf("MonetaryAmount() = %s, want 1800 EUR", e.MonetaryAmount())
	}
}
