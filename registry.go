package brokerimport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Registry holds the securities the caller already knows about.
//
// The extractor reads it to deduplicate extracted securities, and appends to
// it exactly once per distinct new security per document. The registry is
// not safe for concurrent use: batch imports against a shared registry must
// serialize extraction, or shard documents across distinct registries.
type Registry struct {
	securities []*Security
	byISIN     map[string]*Security
}

// NewRegistry returns a new empty security registry.
func NewRegistry() *Registry {
	return &Registry{byISIN: make(map[string]*Security)}
}

// Len returns the number of securities in the registry.
func (r *Registry) Len() int { return len(r.securities) }

// All returns the securities in insertion order.
func (r *Registry) All() iter.Seq[*Security] {
	return func(yield func(*Security) bool) {
		for _, sec := range r.securities {
			if !yield(sec) {
				return
			}
		}
	}
}

// Add appends a security to the registry.
func (r *Registry) Add(sec *Security) {
	r.securities = append(r.securities, sec)
	if sec.ISIN() != "" {
		r.byISIN[sec.ISIN()] = sec
	}
}

// Find resolves an extracted security against the registry: the ISIN is the
// primary key, with ticker and name as fallbacks for documents that do not
// print one. It returns nil when the security is unknown.
func (r *Registry) Find(sec *Security) *Security {
	if sec.ISIN() != "" {
		if known, ok := r.byISIN[sec.ISIN()]; ok {
			return known
		}
	}
	for _, known := range r.securities {
		if sec.Ticker() != "" && known.Ticker() == sec.Ticker() {
			return known
		}
		if sec.Name() != "" && known.Name() == sec.Name() && known.WKN() == sec.WKN() {
			return known
		}
	}
	return nil
}

// this file also contains functions to handle the registry import/export
// format. It should remain human readable, single file and easy to merge.

// jsecurity is the readable line format of the registry file.
type jsecurity struct {
	ISIN     string `json:"isin,omitempty"`
	WKN      string `json:"wkn,omitempty"`
	Ticker   string `json:"ticker,omitempty"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// ImportRegistry reads a registry from 'r' in the import/export format:
// a JSONL file where each line is a JSON object holding one security's
// identifiers, name and currency.
func ImportRegistry(r io.Reader) (*Registry, error) {
	reg := NewRegistry()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		var js jsecurity
		if err := json.Unmarshal([]byte(line), &js); err != nil {
			return nil, fmt.Errorf("cannot parse line for registry import format: %q: %w", line, err)
		}
		sec, err := NewSecurity(js.ISIN, js.WKN, js.Ticker, js.Name, js.Currency)
		if err != nil {
			return nil, fmt.Errorf("invalid security %q in registry: %w", js.Name, err)
		}
		reg.Add(sec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read registry: %w", err)
	}
	return reg, nil
}

// ExportRegistry writes the registry to 'w' in the import/export format,
// one security per line, in insertion order.
func ExportRegistry(w io.Writer, reg *Registry) error {
	for sec := range reg.All() {
		js := jsecurity{
			ISIN:     sec.ISIN(),
			WKN:      sec.WKN(),
			Ticker:   sec.Ticker(),
			Name:     sec.Name(),
			Currency: sec.Currency(),
		}
		data, err := json.Marshal(js)
		if err != nil {
			return fmt.Errorf("cannot marshal security %q: %w", sec.Name(), err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write registry format: %w", err)
		}
	}
	return nil
}
