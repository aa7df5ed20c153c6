package entity

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// FiatUnavailableLiteral is the wire form of an unavailable fiat value.
const FiatUnavailableLiteral = "Fiat Unavailable"

// FiatAmount is either a fiat value or the "unavailable" marker. The zero
// value is unavailable, so a fiat amount that was never computed can not be
// mistaken for zero.
type FiatAmount struct {
	value     decimal.Decimal
	available bool
}

// FiatUnavailable returns the marker meaning the fiat value could not be computed.
func FiatUnavailable() FiatAmount { return FiatAmount{} }

// NewFiatAmount wraps a fiat value. Zero is a valid value.
func NewFiatAmount(v decimal.Decimal) FiatAmount {
	return FiatAmount{value: v, available: true}
}

// Value returns the fiat value and whether it is available.
func (f FiatAmount) Value() (decimal.Decimal, bool) {
	if !f.available {
		return decimal.Zero, false
	}
	return f.value, true
}

func (f FiatAmount) IsUnavailable() bool { return !f.available }

func (f FiatAmount) Equal(other FiatAmount) bool {
	if f.available != other.available {
		return false
	}
	return !f.available || f.value.Equal(other.value)
}

func (f FiatAmount) String() string {
	if !f.available {
		return FiatUnavailableLiteral
	}
	return f.value.String()
}

func (f FiatAmount) MarshalJSON() ([]byte, error) {
	if !f.available {
		return json.Marshal(FiatUnavailableLiteral)
	}
	return json.Marshal(f.value.String())
}

// UnmarshalJSON accepts the unavailable literal, a decimal string or a number.
func (f *FiatAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: null", ErrInvalidFiatAmount)
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == FiatUnavailableLiteral {
		*f = FiatUnavailable()
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFiatAmount, err)
	}
	*f = NewFiatAmount(d)
	return nil
}
