package entity

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// Amount is a signed fixed-point quantity of an asset. The magnitude is kept
// in base units (e.g. wei) and the decimal value is derived on demand, so the
// three stored fields are the only source of truth.
type Amount struct {
	isNegative bool
	quantity   *big.Int
	decimals   uint8
}

// NewAmount builds an amount from a non-negative base-unit quantity.
func NewAmount(isNegative bool, quantity *big.Int, decimals uint8) (Amount, error) {
	if quantity == nil {
		return Amount{}, fmt.Errorf("%w: quantity is required", ErrInvalidQuantity)
	}
	if quantity.Sign() < 0 {
		return Amount{}, fmt.Errorf("%w: quantity must not be negative, use isNegative", ErrInvalidQuantity)
	}
	return Amount{isNegative: isNegative, quantity: new(big.Int).Set(quantity), decimals: decimals}, nil
}

// NewAmountFromHex builds an amount from a hex-encoded base-unit quantity.
func NewAmountFromHex(isNegative bool, quantity string, decimals uint8) (Amount, error) {
	q, err := ParseHexBig(quantity)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}
	return NewAmount(isNegative, q, decimals)
}

func (a Amount) IsNegative() bool { return a.isNegative }

func (a Amount) Decimals() uint8 { return a.decimals }

// Quantity returns a copy of the base-unit magnitude.
func (a Amount) Quantity() *big.Int { return cloneBig(a.quantity) }

// QuantityHex returns the magnitude hex-encoded, as carried on the wire.
func (a Amount) QuantityHex() string { return hexutil.EncodeBig(cloneBig(a.quantity)) }

// IsZero reports whether the magnitude is zero.
func (a Amount) IsZero() bool { return a.quantity == nil || a.quantity.Sign() == 0 }

// Numeric returns (isNegative ? -1 : 1) * quantity / 10^decimals, exactly.
func (a Amount) Numeric() decimal.Decimal {
	d := decimal.NewFromBigInt(cloneBig(a.quantity), -int32(a.decimals))
	if a.isNegative {
		return d.Neg()
	}
	return d
}

// Equal compares sign, magnitude and scale.
func (a Amount) Equal(other Amount) bool {
	return a.isNegative == other.isNegative &&
		a.decimals == other.decimals &&
		cloneBig(a.quantity).Cmp(cloneBig(other.quantity)) == 0
}

func (a Amount) String() string {
	return a.Numeric().StringFixed(int32(a.decimals))
}

type amountJSON struct {
	IsNegative bool   `json:"isNegative"`
	Quantity   string `json:"quantity"`
	Decimals   uint8  `json:"decimals"`
	Numeric    string `json:"numeric,omitempty"`
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{
		IsNegative: a.isNegative,
		Quantity:   a.QuantityHex(),
		Decimals:   a.decimals,
		Numeric:    a.Numeric().String(),
	})
}

// UnmarshalJSON decodes an amount. A "numeric" field on input is ignored;
// the value is always derived from the other three fields.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw amountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}
	parsed, err := NewAmountFromHex(raw.IsNegative, raw.Quantity, raw.Decimals)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
