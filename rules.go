package brokerimport

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The logical fields a rule can capture, by named group. One pattern may
// capture several fields at once (a trade line typically states shares,
// name and ISIN together).
const (
	fieldDate          = "date"
	fieldTime          = "time"
	fieldShares        = "shares"
	fieldAmount        = "amount" // the net amount as booked
	fieldGross         = "gross"
	fieldCurrency      = "currency"
	fieldTax           = "tax" // repeatable
	fieldFee           = "fee" // repeatable
	fieldISIN          = "isin"
	fieldWKN           = "wkn"
	fieldTicker        = "ticker"
	fieldName          = "name"
	fieldNote          = "note"
	fieldExchangeRate  = "exchangeRate"
	fieldForexAmount   = "forexAmount"
	fieldForexCurrency = "forexCurrency"
)

// Rule binds a pattern to the logical fields captured by its named groups.
//
// Rules are evaluated in order against the whole block text; for every
// logical field the first rule that captures a value wins. A repeatable rule
// instead collects the captures of every match, so documents printing the
// same kind of line several times (fee components, partial taxes) are summed
// rather than overwritten.
type Rule struct {
	Pattern *regexp.Regexp
	Repeat  bool
}

// errMissingField marks a mandatory field no rule matched. It aborts only
// the block it occurs in.
var errMissingField = errors.New("no rule matched")

// fields holds the raw string captures for one block.
type fields struct {
	scalar map[string]string
	lists  map[string][]string
}

// extractFields applies the ordered rules to the block text.
func extractFields(text string, rules []Rule) *fields {
	f := &fields{scalar: make(map[string]string), lists: make(map[string][]string)}
	for _, rule := range rules {
		names := rule.Pattern.SubexpNames()
		if rule.Repeat {
			for _, match := range rule.Pattern.FindAllStringSubmatch(text, -1) {
				for i, name := range names {
					if name != "" && match[i] != "" {
						f.lists[name] = append(f.lists[name], match[i])
					}
				}
			}
			continue
		}
		match := rule.Pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		for i, name := range names {
			if name == "" || match[i] == "" {
				continue
			}
			if _, done := f.scalar[name]; !done {
				f.scalar[name] = match[i]
			}
		}
	}
	return f
}

// str returns the scalar capture for a key, or "" when no rule matched.
func (f *fields) str(key string) string { return f.scalar[key] }

// require returns the scalar capture for a key or a missing-field error.
func (f *fields) require(key string) (string, error) {
	v, ok := f.scalar[key]
	if !ok {
		return "", fmt.Errorf("field %q: %w", key, errMissingField)
	}
	return v, nil
}

// date parses the mandatory date field, combined with the optional time
// field. When the document states only a date, the time defaults to
// midnight.
func (f *fields) date(p *Profile) (time.Time, error) {
	ds, err := f.require(fieldDate)
	if err != nil {
		return time.Time{}, err
	}
	day, err := parseDate(ds, p.DateLayouts)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q: %w", fieldDate, err)
	}
	ts := f.str(fieldTime)
	if ts == "" {
		return day, nil
	}
	clock, err := parseClock(ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q: %w", fieldTime, err)
	}
	return day.Add(clock), nil
}

// money parses the capture under amountKey as a monetary value in the
// currency captured under currencyKey.
func (f *fields) money(amountKey, currencyKey string, p *Profile) (Money, error) {
	as, err := f.require(amountKey)
	if err != nil {
		return Money{}, err
	}
	cs, err := f.require(currencyKey)
	if err != nil {
		return Money{}, err
	}
	value, err := ParseDecimal(as, p.Numbers)
	if err != nil {
		return Money{}, fmt.Errorf("field %q: %w", amountKey, err)
	}
	return M(value, cs), nil
}

// sum adds up all repeated captures under key as monetary values in the
// given currency. No capture sums to zero.
func (f *fields) sum(key, currency string, p *Profile) (Money, error) {
	total := M(0, currency)
	for _, s := range f.lists[key] {
		value, err := ParseDecimal(s, p.Numbers)
		if err != nil {
			return Money{}, fmt.Errorf("field %q: %w", key, err)
		}
		total = total.Add(M(value, currency))
	}
	return total, nil
}

// shares parses the mandatory share quantity.
func (f *fields) shares(p *Profile) (Quantity, error) {
	s, err := f.require(fieldShares)
	if err != nil {
		return Quantity{}, err
	}
	value, err := ParseDecimal(s, p.Numbers)
	if err != nil {
		return Quantity{}, fmt.Errorf("field %q: %w", fieldShares, err)
	}
	return Q(value), nil
}

// rate parses the optional exchange rate; ok is false when none was stated.
func (f *fields) rate(p *Profile) (rate decimal.Decimal, ok bool, err error) {
	s := f.str(fieldExchangeRate)
	if s == "" {
		return decimal.Decimal{}, false, nil
	}
	rate, err = ParseDecimal(s, p.Numbers)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("field %q: %w", fieldExchangeRate, err)
	}
	return rate, true, nil
}

// NumberFormat selects the decimal separator convention an institution
// prints numbers in.
type NumberFormat int

const (
	// PointDecimal: 1,234.56 (also accepts Swiss 1'234.56).
	PointDecimal NumberFormat = iota
	// CommaDecimal: 1.234,56
	CommaDecimal
)

// ParseDecimal converts a number as printed by a document into an exact
// decimal. Thousand separators are stripped; a trailing debit/credit sign
// (as in "2,59-") is honored.
func ParseDecimal(s string, format NumberFormat) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return decimal.Decimal{}, errors.New("empty number")
	}
	// some institutions print the sign behind the amount.
	neg := false
	switch v[len(v)-1] {
	case '-':
		neg = true
		v = v[:len(v)-1]
	case '+':
		v = v[:len(v)-1]
	}
	// apostrophes and spaces only ever group thousands.
	v = strings.ReplaceAll(v, "'", "")
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, " ", "")
	switch format {
	case CommaDecimal:
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	case PointDecimal:
		v = strings.ReplaceAll(v, ",", "")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cannot parse number %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// parseDate tries the profile's date layouts in order.
func parseDate(s string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// clockLayouts are the time-of-day formats documents state next to a date.
var clockLayouts = []string{"15:04:05", "15:04"}

// parseClock parses a time of day into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("cannot parse time %q", s)
}
