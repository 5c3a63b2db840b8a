package brokerimport

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// currencyCodeRegex checks for the format: 3 uppercase letters.
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Security represents a tradeable asset as stated by a brokerage document:
// a set of identifiers, a display name and the currency it is quoted in.
//
// All identifiers are optional, but at least one of ISIN, WKN or ticker must
// be present. The WKN slot holds whatever national code the institution
// prints (German WKN, Swiss Valor, ...).
type Security struct {
	isin     string
	wkn      string
	ticker   string
	name     string
	currency string
}

// NewSecurity builds a security from extracted identity fields.
// It fails when no identifier is present, or when a stated ISIN or currency
// code is malformed.
func NewSecurity(isin, wkn, ticker, name, currency string) (*Security, error) {
	if isin == "" && wkn == "" && ticker == "" {
		return nil, errors.New("security needs at least one of ISIN, WKN or ticker")
	}
	if isin != "" {
		if err := ValidateISIN(isin); err != nil {
			return nil, fmt.Errorf("invalid ISIN %q: %w", isin, err)
		}
	}
	if currency != "" && !currencyCodeRegex.MatchString(currency) {
		return nil, fmt.Errorf("invalid currency code %q: must be 3 uppercase letters", currency)
	}
	return &Security{isin: isin, wkn: wkn, ticker: ticker, name: name, currency: currency}, nil
}

func (s *Security) ISIN() string     { return s.isin }
func (s *Security) WKN() string      { return s.wkn }
func (s *Security) Ticker() string   { return s.ticker }
func (s *Security) Name() string     { return s.name }
func (s *Security) Currency() string { return s.currency }

// Key returns the identity key used for deduplication: the ISIN when known,
// otherwise name and national code combined.
func (s *Security) Key() string {
	if s.isin != "" {
		return s.isin
	}
	return s.name + "/" + s.wkn
}

func (s *Security) String() string {
	if s.isin != "" {
		return fmt.Sprintf("%s (%s)", s.name, s.isin)
	}
	return s.name
}

// ValidateISIN checks if a string is a validly formatted ISIN (ISO 6166).
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// Convert letters to numbers for check digit calculation.
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// Apply a variation of the Luhn algorithm.
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(digits[i]))
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(isin[11]))
	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}
	return nil
}
