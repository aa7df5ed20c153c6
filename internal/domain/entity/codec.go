package entity

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseHexBig decodes a 0x-prefixed hexadecimal integer. Leading zeros are
// tolerated since simulation engines do not always emit canonical quantities.
func ParseHexBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	v, err := hexutil.DecodeBig(s)
	if err == nil {
		return v, nil
	}
	if err != hexutil.ErrLeadingZero {
		return nil, fmt.Errorf("decode hex integer %q: %w", s, err)
	}
	digits := strings.TrimLeft(s[2:], "0")
	if digits == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("decode hex integer %q: invalid digits", s)
	}
	return v, nil
}
