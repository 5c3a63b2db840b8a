package brokerimport

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents an exact monetary value in a single currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the full go-money currency, falling back to a generic one
// for codes go-money does not know.
func (m Money) currency() money.Currency {
	// the Money constructor is the only way to get a never-nil currency.
	return *money.New(0, m.cur).Currency()
}

// String returns the value formatted according to its currency conventions.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Amount() decimal.Decimal         { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value), cur: m.cur} }

// MulRate converts m into the given currency at the given exchange rate.
// The result is not rounded; callers compare it against stated amounts
// within a tolerance.
func (m Money) MulRate(rate decimal.Decimal, currency string) Money {
	return Money{value: m.value.Mul(rate), cur: currency}
}

// Round returns m rounded to the minor unit of its currency.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// MinorUnits returns the amount expressed in the minor unit of the currency
// (cents for EUR), rounded half away from zero.
func (m Money) MinorUnits() int64 {
	return m.value.Shift(int32(m.currency().Fraction)).Round(0).IntPart()
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}
