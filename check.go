package brokerimport

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Checker verifies the monetary consistency of extracted items. It is a
// consumer of the extractor's output, never invoked during extraction:
// an inconsistent item surfaces here as a diagnostic error, not as an
// extraction failure.
type Checker struct {
	// Tolerance bounds the reconciliation of a forex counterpart against
	// the stated exchange rate, in major units of the foreign currency.
	// Documents round the converted amount to the minor unit, so the
	// stated rate rarely reproduces it exactly.
	Tolerance decimal.Decimal
}

// NewChecker returns a checker with the default tolerance of 0.01.
func NewChecker() Checker {
	return Checker{Tolerance: decimal.New(1, -2)}
}

// Check recomputes totals across all units of the item's underlying record
// and returns a diagnostic error on the first inconsistency, or nil.
func (c Checker) Check(item Item) error {
	switch it := item.(type) {
	case *SecurityItem:
		if it.Security.Currency() == "" {
			return fmt.Errorf("security %s has no currency", it.Security)
		}
		return nil
	case *TransactionItem:
		return c.checkUnits(&it.Transaction.txBase)
	case *BuySellItem:
		if err := c.checkUnits(&it.Entry.Account.txBase); err != nil {
			return err
		}
		return c.checkPairing(it.Entry)
	default:
		return fmt.Errorf("unknown item type %T", item)
	}
}

// checkUnits verifies that every unit is booked in one currency, that there
// is exactly one gross value, and that a forex counterpart reconciles with
// the stated exchange rate within the tolerance.
func (c Checker) checkUnits(t *txBase) error {
	gross, ok := grossUnit(t.Units)
	if !ok {
		return fmt.Errorf("%s on %s has no gross value unit", t.Type, t.Date.Format("2006-01-02"))
	}
	currency := gross.Amount.Currency()
	for _, u := range t.Units {
		if u.Amount.Currency() != currency {
			return fmt.Errorf("%s unit in %s mixed into a %s transaction", u.Kind, u.Amount.Currency(), currency)
		}
		if u.HasForex() && u.Kind != GrossValue {
			return fmt.Errorf("%s unit carries a forex counterpart", u.Kind)
		}
	}
	if gross.HasForex() {
		converted := gross.Amount.MulRate(gross.Rate, gross.Forex.Currency())
		diff := converted.Sub(gross.Forex).Abs()
		if diff.Amount().GreaterThan(c.Tolerance) {
			return fmt.Errorf("forex %s disagrees with %s at rate %s by %s",
				gross.Forex, gross.Amount, gross.Rate, diff)
		}
	}
	return nil
}

// checkPairing verifies the invariant of the paired posting: both sides
// share date, shares, and monetary amount.
func (c Checker) checkPairing(e *BuySellEntry) error {
	if !e.Portfolio.Date.Equal(e.Account.Date) {
		return fmt.Errorf("paired postings disagree on date: %s vs %s", e.Portfolio.Date, e.Account.Date)
	}
	if !e.Portfolio.Shares.Equal(e.Account.Shares) {
		return fmt.Errorf("paired postings disagree on shares: %s vs %s", e.Portfolio.Shares, e.Account.Shares)
	}
	if !e.Portfolio.MonetaryAmount().Equal(e.Account.MonetaryAmount()) {
		return fmt.Errorf("paired postings disagree on amount: %s vs %s",
			e.Portfolio.MonetaryAmount(), e.Account.MonetaryAmount())
	}
	return nil
}
