package entity

import (
	"fmt"
	"strings"
)

// TokenStandard classifies how an asset is represented on chain.
type TokenStandard string

const (
	// TokenStandardNone marks the chain's native currency.
	TokenStandardNone    TokenStandard = "NONE"
	TokenStandardERC20   TokenStandard = "ERC20"
	TokenStandardERC721  TokenStandard = "ERC721"
	TokenStandardERC1155 TokenStandard = "ERC1155"
)

// ParseTokenStandard parses a standard name case-insensitively.
func ParseTokenStandard(s string) (TokenStandard, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TokenStandardNone), "NATIVE":
		return TokenStandardNone, nil
	case string(TokenStandardERC20):
		return TokenStandardERC20, nil
	case string(TokenStandardERC721):
		return TokenStandardERC721, nil
	case string(TokenStandardERC1155):
		return TokenStandardERC1155, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStandard, s)
	}
}

// HasAddress reports whether identifiers of this standard carry a contract address.
func (s TokenStandard) HasAddress() bool {
	return s == TokenStandardERC20 || s == TokenStandardERC721 || s == TokenStandardERC1155
}

// HasTokenID reports whether identifiers of this standard carry a token id.
func (s TokenStandard) HasTokenID() bool {
	return s == TokenStandardERC721 || s == TokenStandardERC1155
}

func (s TokenStandard) String() string {
	return string(s)
}
