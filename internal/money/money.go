package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits a Money value carries.
const Precision int32 = 2

// maxExponent bounds the exponent Parse accepts, so rescaling stays cheap.
const maxExponent = 32

// MaxAmount is the largest amount a DECIMAL(12,2) column holds.
var MaxAmount = Money{d: decimal.RequireFromString("9999999999.99")}

var (
	ErrNegative   = errors.New("money: amount must not be negative")
	ErrNotNumeric = errors.New("money: amount is not numeric")
	ErrTooPrecise = errors.New("money: amount has more than two fractional digits")
	ErrTooLarge   = errors.New("money: amount exceeds the maximum")
)

// Money is an immutable, non-negative fixed-point amount.
// The zero value is a valid amount of 0.00.
type Money struct {
	d decimal.Decimal
}

// Zero returns 0.00
func Zero() Money {
	return Money{d: decimal.Zero}
}

// New rounds d to Precision and rejects negative values.
func New(d decimal.Decimal) (Money, error) {
	rounded := d.Round(Precision)
	if rounded.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegative, rounded.StringFixed(Precision))
	}
	return Money{d: rounded}, nil
}

// FromCents builds a Money value from an integer number of cents.
func FromCents(cents int64) (Money, error) {
	return New(decimal.New(cents, -Precision))
}

// Parse reads a decimal string such as "20", "20.5" or "20.50".
// Input is never rounded: more than Precision significant fractional digits
// give ErrTooPrecise and anything above MaxAmount gives ErrTooLarge.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty input", ErrNotNumeric)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if d.IsZero() {
		return Zero(), nil
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %q", ErrNegative, s)
	}

	exp := d.Exponent()
	if exp > maxExponent {
		return Money{}, fmt.Errorf("%w: %q", ErrTooLarge, s)
	}
	if exp < -maxExponent {
		return Money{}, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	if d.GreaterThan(MaxAmount.d) {
		return Money{}, fmt.Errorf("%w: %q", ErrTooLarge, s)
	}
	if exp < -Precision && !d.Truncate(Precision).Equal(d) {
		return Money{}, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	return New(d)
}

// MustParse is Parse for constants and seed data. It panics on bad input.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }

func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }

func (m Money) GreaterThanOrEqual(o Money) bool { return m.d.GreaterThanOrEqual(o.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

// Sub returns m - o. The result must stay non-negative.
func (m Money) Sub(o Money) (Money, error) {
	return New(m.d.Sub(o.d))
}

// String renders the amount with exactly two decimals, e.g. "20.00".
func (m Money) String() string {
	return m.d.StringFixed(Precision)
}

// MarshalJSON writes the amount as a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores the amount as a DECIMAL string.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan reads DECIMAL columns back into Money.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("money: scan: %w", err)
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
