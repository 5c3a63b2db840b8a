package brokerimport

// MsgCancellationUnsupported is the fixed diagnostic attached to items built
// from cancellation (Storno) blocks. Such blocks are fully parsed so the
// would-be record stays inspectable, but reprocessing a cancellation
// automatically is not supported and downstream valuation must not apply it.
const MsgCancellationUnsupported = "cancellation notices cannot be imported automatically"

// Item is the result envelope produced by the extractor: one new security,
// one paired trade, or one single-sided transaction.
//
// Items are immutable once appended to the output stream. A failed item was
// understood by the engine but is intentionally not importable; it still
// carries the fully populated underlying record. This is distinct from a
// block parse error, which produces no item at all.
type Item interface {
	// Failed reports whether the item is a recognized-but-unsupported case.
	Failed() bool
	// FailureMessage returns the fixed diagnostic, or "" for regular items.
	FailureMessage() string
}

// itemStatus is the shared success/failure flag embedded in every item.
type itemStatus struct {
	failure string
}

func (s itemStatus) Failed() bool           { return s.failure != "" }
func (s itemStatus) FailureMessage() string { return s.failure }

// SecurityItem announces a security that was not resolvable in the caller's
// registry. It is emitted at most once per distinct security per document,
// and never for securities the registry already knows.
type SecurityItem struct {
	itemStatus
	Security *Security
}

// NewSecurityItem wraps a newly created security.
func NewSecurityItem(sec *Security) *SecurityItem {
	return &SecurityItem{Security: sec}
}

// TransactionItem wraps a single-sided transaction.
type TransactionItem struct {
	itemStatus
	Transaction *AccountTransaction
}

// NewTransactionItem wraps a successfully assembled transaction.
func NewTransactionItem(tx *AccountTransaction) *TransactionItem {
	return &TransactionItem{Transaction: tx}
}

// NewFailedTransactionItem wraps a fully assembled but unsupported
// transaction with its diagnostic message.
func NewFailedTransactionItem(tx *AccountTransaction, msg string) *TransactionItem {
	return &TransactionItem{itemStatus: itemStatus{failure: msg}, Transaction: tx}
}

// BuySellItem wraps a paired trade posting.
type BuySellItem struct {
	itemStatus
	Entry *BuySellEntry
}

// NewBuySellItem wraps a successfully assembled trade.
func NewBuySellItem(e *BuySellEntry) *BuySellItem {
	return &BuySellItem{Entry: e}
}

// NewFailedBuySellItem wraps a fully assembled but unsupported trade with
// its diagnostic message.
func NewFailedBuySellItem(e *BuySellEntry, msg string) *BuySellItem {
	return &BuySellItem{itemStatus: itemStatus{failure: msg}, Entry: e}
}
