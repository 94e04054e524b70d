package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents). On the wire it is a plain JSON
// number in major units.
type Money int64

var (
	ErrInvalidAmount = errors.New("amount must be a number")
	ErrTooManyDigits = errors.New("amount must have at most 2 decimal places")
	ErrNotPositive   = errors.New("amount must be greater than zero")
	ErrTooLarge      = errors.New("amount is too large")
	nullJSON         = []byte("null")

	// commas are only allowed as thousands separators: "1,000.25".
	groupedRe = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// Parse reads a user-entered amount such as "100", "12.5" or "1,000.25".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	if strings.Contains(s, ",") {
		if !groupedRe.MatchString(s) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return 0, ErrTooManyDigits
	}

	return fromDecimalChecked(d)
}

// ParsePositive is Parse plus the amount > 0 rule.
func ParsePositive(s string) (Money, error) {
	m, err := Parse(s)
	if err != nil {
		return 0, err
	}

	if m <= 0 {
		return 0, ErrNotPositive
	}

	return m, nil
}

// FromDecimal rounds d to cents and assumes the result fits in int64.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).Round(0).IntPart())
}

func fromDecimalChecked(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrTooLarge, d.String())
	}

	return Money(cents.IntPart()), nil
}

func FromMajor(units int64) Money {
	return Money(units * 100)
}

func (v Money) Decimal() decimal.Decimal {
	return decimal.New(int64(v), -2)
}

func (v Money) String() string {
	return v.Decimal().StringFixed(2)
}

func (v Money) MarshalJSON() ([]byte, error) {
	return []byte(v.Decimal().String()), nil
}

func (v *Money) UnmarshalJSON(data []byte) error {
	if string(data) == string(nullJSON) {
		*v = 0
		return nil
	}

	raw := strings.Trim(string(data), `"`)

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, raw)
	}

	m, err := fromDecimalChecked(d)
	if err != nil {
		return err
	}

	*v = m

	return nil
}
