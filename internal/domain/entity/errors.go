package entity

import "errors"

// Sentinel errors returned by the domain constructors and decoders.
var (
	ErrInvalidStandard   = errors.New("invalid token standard")
	ErrInvalidAsset      = errors.New("invalid asset identifier")
	ErrInvalidQuantity   = errors.New("invalid amount quantity")
	ErrInvalidFiatAmount = errors.New("invalid fiat amount")
)
