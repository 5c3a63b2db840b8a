package brokerimport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// Some institutions offer position exports as JSON instead of documents.
// The layout varies, so the caller configures where the fields sit with
// jsonpath expressions and the importer does the rest.

// PositionPaths configures a JSON position import.
// Positions selects the list of position objects; the remaining paths are
// evaluated relative to each position. ISIN, Ticker and WKN are optional,
// but a position resolving none of them is rejected.
type PositionPaths struct {
	Positions string
	ISIN      string
	WKN       string
	Ticker    string
	Name      string
	Currency  string
}

// ImportPositionsJSON reads a broker JSON position export from 'r' and adds
// every position not already resolvable to 'reg'. It returns the securities
// it added.
func ImportPositionsJSON(r io.Reader, paths PositionPaths, reg *Registry) ([]*Security, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse position export: %w", err)
	}

	jval, err := jsonpath.Get(paths.Positions, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating positions path %q: %w", paths.Positions, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("positions path %q did not select a list, got %T", paths.Positions, jval)
	}

	var added []*Security
	for i, jpos := range jlist {
		name, err := jstring(jpos, paths.Name)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		currency, err := jstring(jpos, paths.Currency)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		// identifier paths are optional in the configuration.
		isin, _ := jstring(jpos, paths.ISIN)
		wkn, _ := jstring(jpos, paths.WKN)
		ticker, _ := jstring(jpos, paths.Ticker)

		sec, err := NewSecurity(isin, wkn, ticker, name, currency)
		if err != nil {
			return nil, fmt.Errorf("position %d (%s): %w", i, name, err)
		}
		if reg.Find(sec) != nil {
			continue
		}
		reg.Add(sec)
		added = append(added, sec)
	}
	return added, nil
}

// jstring evaluates a jsonpath against a position object and coerces the
// answer to a string.
func jstring(jobj any, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("path %q did not select a string, got %T", path, jval)
	}
	return s, nil
}
