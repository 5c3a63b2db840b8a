package brokerimport

import (
	"fmt"
)

// Document is a named document: a source identifier (typically the file
// name, carried into every extracted record) and the full UTF-8 text body.
type Document struct {
	Name string
	Text string
}

// BlockError reports a recognized block whose mandatory fields could not be
// extracted. It aborts only its own block; sibling blocks of the same
// document are unaffected. This is the "parse error" side of the error
// taxonomy, as opposed to failed items, which were understood but are
// intentionally not imported.
type BlockError struct {
	Source string
	Type   BlockType
	Err    error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s: cannot parse %s block: %v", e.Source, e.Type, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Extractor applies one institution profile to documents.
type Extractor struct {
	profile *Profile
}

// NewExtractor returns an extractor for the given institution profile.
func NewExtractor(p *Profile) *Extractor {
	return &Extractor{profile: p}
}

// Extract converts one document into an ordered list of items plus a list
// of non-fatal block errors.
//
// The registry is read to deduplicate securities and appended to for every
// distinct new security; this is the only mutation. Extraction is
// synchronous and deterministic: the same text against an equal registry
// yields the same items in the same order. A document with mixed
// well-formed and malformed blocks yields a partial result, never an
// all-or-nothing failure.
func (e *Extractor) Extract(doc Document, reg *Registry) ([]Item, []error) {
	// Per document the pass is a flat state machine: scanning yields the
	// next block, a matched block either reaches assembly or fails with a
	// block-local error, and either way the loop returns to scanning.
	blocks := Segment(e.profile, doc.Text)
	r := &resolver{registry: reg}

	var items []Item
	var errs []error
	for _, block := range blocks {
		blockItems, err := e.assemble(doc, block, r)
		if err != nil {
			errs = append(errs, &BlockError{Source: doc.Name, Type: block.Type, Err: err})
			continue
		}
		items = append(items, blockItems...)
	}
	return items, errs
}

// assemble turns one block into its items.
func (e *Extractor) assemble(doc Document, block Block, r *resolver) ([]Item, error) {
	rules, ok := e.profile.Rules[block.Type]
	if !ok {
		return nil, fmt.Errorf("profile %s has no rules for %s blocks", e.profile.Name, block.Type)
	}
	f := extractFields(block.Text, rules)
	if block.Type.hasSecurity() {
		return e.assembleSecurity(doc, block, f, r)
	}
	return e.assembleCash(doc, block, f)
}

// assembleCash builds a single-sided transaction for a block without a
// security: interest, deposits, withdrawals, standalone fees and taxes,
// tax refunds.
func (e *Extractor) assembleCash(doc Document, block Block, f *fields) ([]Item, error) {
	typ := block.Type.txType()
	date, err := f.date(e.profile)
	if err != nil {
		return nil, err
	}
	units, err := decompose(f, e.profile, typ, nil)
	if err != nil {
		return nil, err
	}
	tx := NewAccountTransaction(typ, date, nil, Quantity{}, units, f.str(fieldNote), doc.Name)
	if block.Cancelled {
		return []Item{NewFailedTransactionItem(tx, MsgCancellationUnsupported)}, nil
	}
	return []Item{NewTransactionItem(tx)}, nil
}

// assembleSecurity builds the record for a block referencing a security:
// a paired BuySellEntry for trades, a single transaction for dividends and
// removals. The SecurityItem for a new security precedes the record that
// references it.
func (e *Extractor) assembleSecurity(doc Document, block Block, f *fields, r *resolver) ([]Item, error) {
	typ := block.Type.txType()
	date, err := f.date(e.profile)
	if err != nil {
		return nil, err
	}
	currency, err := f.require(fieldCurrency)
	if err != nil {
		return nil, err
	}
	extracted, err := securityFrom(f, currency)
	if err != nil {
		return nil, err
	}
	res := r.lookup(extracted)

	units, err := decompose(f, e.profile, typ, &res)
	if err != nil {
		return nil, err
	}

	var shares Quantity
	if f.str(fieldShares) != "" {
		if shares, err = f.shares(e.profile); err != nil {
			return nil, err
		}
	}
	note := f.str(fieldNote)

	switch typ {
	case TxBuy, TxSell:
		entry, err := NewBuySellEntry(typ, date, res.Security, shares, units, note, doc.Name)
		if err != nil {
			return nil, err
		}
		if block.Cancelled {
			return []Item{NewFailedBuySellItem(entry, MsgCancellationUnsupported)}, nil
		}
		return withSecurityItem(r, res, NewBuySellItem(entry)), nil
	default:
		tx := NewAccountTransaction(typ, date, res.Security, shares, units, note, doc.Name)
		if block.Cancelled {
			return []Item{NewFailedTransactionItem(tx, MsgCancellationUnsupported)}, nil
		}
		return withSecurityItem(r, res, NewTransactionItem(tx)), nil
	}
}

// withSecurityItem commits the resolution and prepends the SecurityItem for
// a New outcome. An Existing outcome suppresses it, reducing the document's
// item count by exactly one per deduplicated security.
func withSecurityItem(r *resolver, res Resolution, item Item) []Item {
	if secItem := r.commit(res); secItem != nil {
		return []Item{secItem, item}
	}
	return []Item{item}
}

// securityFrom builds the security a block states, quoting it in the
// foreign currency when the block carries a forex counterpart (that is the
// natively quoted currency), and in the booking currency otherwise.
func securityFrom(f *fields, bookingCurrency string) (*Security, error) {
	currency := f.str(fieldForexCurrency)
	if currency == "" {
		currency = bookingCurrency
	}
	return NewSecurity(f.str(fieldISIN), f.str(fieldWKN), f.str(fieldTicker), f.str(fieldName), currency)
}
