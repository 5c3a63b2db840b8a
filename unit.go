package brokerimport

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitKind tags the role a monetary unit plays inside a transaction.
type UnitKind string

const (
	GrossValue UnitKind = "GROSS_VALUE"
	Tax        UnitKind = "TAX"
	Fee        UnitKind = "FEE"
)

// Unit is one monetary component of a transaction, stated in the
// transaction's booking currency.
//
// Only a GROSS_VALUE unit may carry a foreign-currency counterpart: the
// amount the document states in the security's natively quoted currency,
// together with the stated exchange rate.
type Unit struct {
	Kind   UnitKind
	Amount Money

	// Forex and Rate are set together, and only on GROSS_VALUE units.
	Forex Money
	Rate  decimal.Decimal
}

// NewUnit returns a plain unit without a foreign-currency counterpart.
func NewUnit(kind UnitKind, amount Money) Unit {
	return Unit{Kind: kind, Amount: amount}
}

// NewForexUnit returns a GROSS_VALUE unit carrying the stated
// foreign-currency amount and exchange rate.
func NewForexUnit(amount, forex Money, rate decimal.Decimal) (Unit, error) {
	if amount.Currency() == forex.Currency() {
		return Unit{}, fmt.Errorf("forex counterpart must be in a different currency, both are %s", amount.Currency())
	}
	if rate.IsZero() || rate.IsNegative() {
		return Unit{}, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	return Unit{Kind: GrossValue, Amount: amount, Forex: forex, Rate: rate}, nil
}

// HasForex reports whether the unit carries a foreign-currency counterpart.
func (u Unit) HasForex() bool { return u.Forex.Currency() != "" }

// sumUnits adds up the amounts of all units of the given kind.
// Addition is commutative, so the order in which the document printed the
// lines does not matter.
func sumUnits(units []Unit, kind UnitKind) Money {
	var total Money
	for _, u := range units {
		if u.Kind == kind {
			total = total.Add(u.Amount)
		}
	}
	return total
}

// grossUnit returns the GROSS_VALUE unit, or false when there is none.
func grossUnit(units []Unit) (Unit, bool) {
	for _, u := range units {
		if u.Kind == GrossValue {
			return u, true
		}
	}
	return Unit{}, false
}
