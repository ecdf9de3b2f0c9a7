package costbasis

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of amounts read from a cost-basis export
// when nothing else is specified.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of 'value' in 'currency'.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// USD is a shortcut for M(value, "USD").
func USD[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return M(value, "USD")
}

// ParseMoney parses an amount as found in exports: "1234.5", "$1,234.50", "-$5".
func ParseMoney(str, currency string) (Money, error) {
	s := strings.TrimSpace(str)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		// accounting notation for negative amounts
		s, neg = s[1:len(s)-1], true
	}
	if strings.HasPrefix(s, "-") {
		s, neg = s[1:], !neg
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Money{}, fmt.Errorf("invalid amount %q: empty", str)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", str, err)
	}
	if neg {
		v = v.Neg()
	}
	return Money{value: v, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	code := m.cur
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// String returns the money formatted in its currency, e.g. "$1,234.56" or "-$5.00".
// Amounts are rounded to the currency fraction first, so that tiny negative
// amounts are not printed as "-$0.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Simple wrapper around decimal.Decimal

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value), cur: m.cur} }
func (m Money) Round() Money                    { return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur} }
func (m Money) InexactFloat64() float64         { return m.value.InexactFloat64() }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// Equal reports whether m and n are the same amount. The "" currency equals any currency.
func (m Money) Equal(n Money) bool {
	if m.cur != "" && n.cur != "" && m.cur != n.cur {
		return false
	}
	return m.value.Equal(n.value)
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Ratio returns m/n as a float, 0 when n is zero.
func (m Money) Ratio(n Money) float64 {
	if n.value.IsZero() {
		return 0
	}
	return m.value.Div(n.value).InexactFloat64()
}
