// Package brokerimport converts plain-text renderings of brokerage and bank
// documents (trade confirmations, account statements, dividend advices) into
// a small set of normalized financial-transaction records.
//
// The engine is an interpreter: it knows nothing about any particular bank.
// An institution is described by a [Profile], a pure data structure holding
// section markers, locale settings and ordered pattern rules. The engine
// applies a profile to a document in five stages:
//
//   - segmentation of the document text into typed, independent blocks,
//   - field extraction by ordered, first-match pattern rules,
//   - decomposition of repeated tax and fee lines into monetary units,
//     with an optional foreign-currency counterpart on the gross value,
//   - resolution of the extracted security against a caller-supplied
//     [Registry], deduplicating against what the caller already knows,
//   - assembly of the final records, wrapped in [Item] envelopes.
//
// A malformed block never aborts the whole document: the extractor returns
// the items it could assemble plus a separate list of block-local errors.
// Recognized but intentionally unsupported blocks (cancellation notices)
// become fully populated items marked as failed, so callers can still
// inspect what would have been imported.
//
// All monetary arithmetic is exact, backed by decimal values; no floating
// point is involved in totals.
//
// This package serves as the foundational logic for the `bri` command-line
// tool, which batches documents into a security registry kept in a
// human-readable JSONL file.
package brokerimport
