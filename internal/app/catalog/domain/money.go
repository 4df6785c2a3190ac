package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Money is an immutable exact decimal amount backed by big.Rat.
type Money struct {
	amount *big.Rat
}

// NewMoney creates Money from a numerator and denominator, e.g. (999, 100) for 9.99.
func NewMoney(numerator, denominator int64) *Money {
	if denominator == 0 {
		panic("money: denominator cannot be zero")
	}
	return &Money{amount: big.NewRat(numerator, denominator)}
}

// ParseMoney parses a decimal string such as "9.99". Fractions ("999/100")
// and exponents are rejected so API input stays unambiguous.
func ParseMoney(decimal string) (*Money, error) {
	s := strings.TrimSpace(decimal)
	if s == "" || strings.ContainsAny(s, "/eE") {
		return nil, fmt.Errorf("invalid decimal format: %q", decimal)
	}
	rat := new(big.Rat)
	if _, ok := rat.SetString(s); !ok {
		return nil, fmt.Errorf("invalid decimal format: %q", decimal)
	}
	if !rat.Num().IsInt64() || !rat.Denom().IsInt64() {
		return nil, fmt.Errorf("decimal out of range: %q", decimal)
	}
	return &Money{amount: rat}, nil
}

func (m *Money) IsPositive() bool {
	return m.amount.Sign() > 0
}

func (m *Money) Cmp(other *Money) int {
	return m.amount.Cmp(other.amount)
}

func (m *Money) Equals(other *Money) bool {
	return other != nil && m.amount.Cmp(other.amount) == 0
}

// Numerator and Denominator return the reduced fraction used for persistence.
func (m *Money) Numerator() int64 {
	return m.amount.Num().Int64()
}

func (m *Money) Denominator() int64 {
	return m.amount.Denom().Int64()
}

// Key renders the reduced fraction, e.g. "999/100". Equal amounts always
// produce the same key regardless of how they were written.
func (m *Money) Key() string {
	return m.amount.RatString()
}

// String renders the amount with two decimal places.
func (m *Money) String() string {
	return m.amount.FloatString(2)
}
