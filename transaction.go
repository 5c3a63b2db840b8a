package brokerimport

import (
	"fmt"
	"time"
)

// TxType is a typed string identifying the nature of a transaction.
type TxType string

const (
	TxBuy        TxType = "BUY"
	TxSell       TxType = "SELL"
	TxDividend   TxType = "DIVIDEND"
	TxInterest   TxType = "INTEREST"
	TxDeposit    TxType = "DEPOSIT"
	TxWithdrawal TxType = "WITHDRAWAL"
	TxFees       TxType = "FEES"
	TxTaxes      TxType = "TAXES"
	TxTaxRefund  TxType = "TAX_REFUND"
	TxRemoval    TxType = "REMOVAL"
)

// IsOutflow reports whether money leaves the account for this type.
// Outflows pay gross value plus taxes and fees; inflows credit gross value
// minus taxes and fees.
func (t TxType) IsOutflow() bool {
	switch t {
	case TxBuy, TxWithdrawal, TxFees, TxTaxes, TxRemoval:
		return true
	}
	return false
}

// txBase carries the fields shared by account-side and portfolio-side
// transactions.
type txBase struct {
	Type     TxType
	Date     time.Time
	Security *Security // nil for pure cash entries
	Shares   Quantity  // zero when the document states none
	Note     string
	Source   string // originating document name
	Units    []Unit
}

// GrossValue returns the amount of the GROSS_VALUE unit, or zero Money when
// the transaction has none.
func (t *txBase) GrossValue() Money {
	if u, ok := grossUnit(t.Units); ok {
		return u.Amount
	}
	return Money{}
}

// TaxTotal returns the sum of all TAX units.
func (t *txBase) TaxTotal() Money { return sumUnits(t.Units, Tax) }

// FeeTotal returns the sum of all FEE units.
func (t *txBase) FeeTotal() Money { return sumUnits(t.Units, Fee) }

// MonetaryAmount derives the booked amount from the units:
// gross value adjusted by taxes and fees, sign determined by the
// transaction direction.
func (t *txBase) MonetaryAmount() Money {
	gross := t.GrossValue()
	if t.Type.IsOutflow() {
		return gross.Add(t.TaxTotal()).Add(t.FeeTotal())
	}
	return gross.Sub(t.TaxTotal()).Sub(t.FeeTotal())
}

// AccountTransaction is a single-sided cash movement: a dividend, tax, fee,
// interest, deposit, withdrawal, tax refund or removal. The account side of
// a trade is also an AccountTransaction, but it only ever occurs paired
// inside a [BuySellEntry].
type AccountTransaction struct {
	txBase
}

// NewAccountTransaction builds a single-sided transaction.
func NewAccountTransaction(typ TxType, date time.Time, security *Security, shares Quantity, units []Unit, note, source string) *AccountTransaction {
	return &AccountTransaction{txBase{
		Type: typ, Date: date, Security: security, Shares: shares,
		Units: units, Note: note, Source: source,
	}}
}

// PortfolioTransaction is the portfolio-side posting of a trade, moving
// shares in or out of the depot.
type PortfolioTransaction struct {
	txBase
}

// BuySellEntry is the paired posting representing one trade: a
// portfolio-side transaction and an account-side transaction of the matching
// type, sharing date, shares, units and monetary amount.
//
// The pairing is the domain invariant: neither side exists without the
// other, so the only way to build one is [NewBuySellEntry].
type BuySellEntry struct {
	Portfolio PortfolioTransaction
	Account   AccountTransaction
}

// NewBuySellEntry builds the paired posting for a trade.
// typ must be TxBuy or TxSell.
func NewBuySellEntry(typ TxType, date time.Time, security *Security, shares Quantity, units []Unit, note, source string) (*BuySellEntry, error) {
	if typ != TxBuy && typ != TxSell {
		return nil, fmt.Errorf("buy/sell entry type must be %s or %s, got %s", TxBuy, TxSell, typ)
	}
	if security == nil {
		return nil, fmt.Errorf("%s entry needs a security", typ)
	}
	if !shares.IsPositive() {
		return nil, fmt.Errorf("%s entry shares must be positive, got %s", typ, shares)
	}
	base := txBase{
		Type: typ, Date: date, Security: security, Shares: shares,
		Units: units, Note: note, Source: source,
	}
	return &BuySellEntry{
		Portfolio: PortfolioTransaction{base},
		Account:   AccountTransaction{base},
	}, nil
}

// Date returns the shared trade date.
func (e *BuySellEntry) Date() time.Time { return e.Account.Date }

// MonetaryAmount returns the shared booked amount.
func (e *BuySellEntry) MonetaryAmount() Money { return e.Account.MonetaryAmount() }
