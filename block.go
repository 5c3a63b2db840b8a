package brokerimport

import "strings"

// BlockType hints at what kind of record a document block describes.
// It selects the rule set applied to the block and the record assembled
// from it.
type BlockType string

const (
	BlockBuy        BlockType = "buy"
	BlockSell       BlockType = "sell"
	BlockDividend   BlockType = "dividend"
	BlockInterest   BlockType = "interest"
	BlockDeposit    BlockType = "deposit"
	BlockWithdrawal BlockType = "withdrawal"
	BlockFee        BlockType = "fee"
	BlockTax        BlockType = "tax"
	BlockTaxRefund  BlockType = "tax-refund"
	BlockRemoval    BlockType = "removal"
)

// txType maps a block type to the transaction type assembled from it.
func (b BlockType) txType() TxType {
	switch b {
	case BlockBuy:
		return TxBuy
	case BlockSell:
		return TxSell
	case BlockDividend:
		return TxDividend
	case BlockInterest:
		return TxInterest
	case BlockDeposit:
		return TxDeposit
	case BlockWithdrawal:
		return TxWithdrawal
	case BlockFee:
		return TxFees
	case BlockTax:
		return TxTaxes
	case BlockTaxRefund:
		return TxTaxRefund
	case BlockRemoval:
		return TxRemoval
	}
	panic("unknown block type " + string(b))
}

// hasSecurity reports whether blocks of this type reference a security.
func (b BlockType) hasSecurity() bool {
	switch b {
	case BlockBuy, BlockSell, BlockDividend, BlockRemoval:
		return true
	}
	return false
}

// Block is an independent slice of a document describing exactly one record.
type Block struct {
	Type      BlockType
	Text      string
	Cancelled bool // a cancellation marker was found inside the block
}

// Segment splits a document's text into ordered, non-overlapping blocks
// using the profile's section markers. Text before the first marker is
// dropped without error: documents routinely open with boilerplate. A
// document with zero recognizable blocks yields nil, which is not a fatal
// condition.
func Segment(p *Profile, text string) []Block {
	lines := strings.Split(text, "\n")

	var blocks []Block
	var current *Block
	var buf []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.Join(buf, "\n")
		if p.Cancel != nil && p.Cancel.MatchString(current.Text) {
			current.Cancelled = true
		}
		blocks = append(blocks, *current)
		current, buf = nil, nil
	}

	for _, line := range lines {
		for _, sec := range p.Sections {
			if sec.Marker.MatchString(line) {
				flush()
				current = &Block{Type: sec.Type}
				break
			}
		}
		if current != nil {
			buf = append(buf, line)
		}
	}
	flush()
	return blocks
}
