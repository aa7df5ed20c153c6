package entity

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AssetIdentifier uniquely identifies an asset on a chain. The set of
// implementations is closed: NativeAsset, ERC20Asset, ERC721Asset and
// ERC1155Asset. Which of address and token id are present is fixed by the
// variant, so an identifier missing a required field cannot be built.
type AssetIdentifier interface {
	Standard() TokenStandard
	assetIdentifier()
}

// NativeAsset identifies the native currency of a chain.
type NativeAsset struct{}

// ERC20Asset identifies a fungible token contract.
type ERC20Asset struct {
	address common.Address
}

// ERC721Asset identifies a single non-fungible token.
type ERC721Asset struct {
	address common.Address
	tokenID *big.Int
}

// ERC1155Asset identifies a semi-fungible token.
type ERC1155Asset struct {
	address common.Address
	tokenID *big.Int
}

func NewNativeAsset() NativeAsset { return NativeAsset{} }

func NewERC20Asset(address common.Address) ERC20Asset {
	return ERC20Asset{address: address}
}

func NewERC721Asset(address common.Address, tokenID *big.Int) (ERC721Asset, error) {
	id, err := copyTokenID(tokenID)
	if err != nil {
		return ERC721Asset{}, err
	}
	return ERC721Asset{address: address, tokenID: id}, nil
}

func NewERC1155Asset(address common.Address, tokenID *big.Int) (ERC1155Asset, error) {
	id, err := copyTokenID(tokenID)
	if err != nil {
		return ERC1155Asset{}, err
	}
	return ERC1155Asset{address: address, tokenID: id}, nil
}

func copyTokenID(tokenID *big.Int) (*big.Int, error) {
	if tokenID == nil {
		return nil, fmt.Errorf("%w: token id is required", ErrInvalidAsset)
	}
	if tokenID.Sign() < 0 {
		return nil, fmt.Errorf("%w: token id must not be negative", ErrInvalidAsset)
	}
	return new(big.Int).Set(tokenID), nil
}

func (NativeAsset) Standard() TokenStandard  { return TokenStandardNone }
func (ERC20Asset) Standard() TokenStandard   { return TokenStandardERC20 }
func (ERC721Asset) Standard() TokenStandard  { return TokenStandardERC721 }
func (ERC1155Asset) Standard() TokenStandard { return TokenStandardERC1155 }

func (NativeAsset) assetIdentifier()  {}
func (ERC20Asset) assetIdentifier()   {}
func (ERC721Asset) assetIdentifier()  {}
func (ERC1155Asset) assetIdentifier() {}

func (a ERC20Asset) Address() common.Address   { return a.address }
func (a ERC721Asset) Address() common.Address  { return a.address }
func (a ERC1155Asset) Address() common.Address { return a.address }

// TokenID returns a copy of the token id.
func (a ERC721Asset) TokenID() *big.Int { return cloneBig(a.tokenID) }

// TokenID returns a copy of the token id.
func (a ERC1155Asset) TokenID() *big.Int { return cloneBig(a.tokenID) }

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// IsNativeAsset reports whether a identifies the chain's native currency.
func IsNativeAsset(a AssetIdentifier) bool {
	_, ok := a.(NativeAsset)
	return ok
}

// AssetAddress returns the contract address of a, if its variant has one.
func AssetAddress(a AssetIdentifier) (common.Address, bool) {
	switch v := a.(type) {
	case ERC20Asset:
		return v.address, true
	case ERC721Asset:
		return v.address, true
	case ERC1155Asset:
		return v.address, true
	default:
		return common.Address{}, false
	}
}

// AssetTokenID returns the token id of a, if its variant has one.
func AssetTokenID(a AssetIdentifier) (*big.Int, bool) {
	switch v := a.(type) {
	case ERC721Asset:
		return v.TokenID(), true
	case ERC1155Asset:
		return v.TokenID(), true
	default:
		return nil, false
	}
}

// NewAssetIdentifier builds an identifier from its wire fields. Empty strings
// mean "absent". Fields that do not belong to the standard are rejected.
func NewAssetIdentifier(standard TokenStandard, address, tokenID string) (AssetIdentifier, error) {
	if !standard.HasAddress() && address != "" {
		return nil, fmt.Errorf("%w: %s asset must not have an address", ErrInvalidAsset, standard)
	}
	if !standard.HasTokenID() && tokenID != "" {
		return nil, fmt.Errorf("%w: %s asset must not have a token id", ErrInvalidAsset, standard)
	}

	var addr common.Address
	if standard.HasAddress() {
		if address == "" {
			return nil, fmt.Errorf("%w: %s asset requires an address", ErrInvalidAsset, standard)
		}
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("%w: malformed address %q", ErrInvalidAsset, address)
		}
		addr = common.HexToAddress(address)
	}

	var id *big.Int
	if standard.HasTokenID() {
		if tokenID == "" {
			return nil, fmt.Errorf("%w: %s asset requires a token id", ErrInvalidAsset, standard)
		}
		var err error
		if id, err = ParseHexBig(tokenID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
		}
	}

	switch standard {
	case TokenStandardNone:
		return NewNativeAsset(), nil
	case TokenStandardERC20:
		return NewERC20Asset(addr), nil
	case TokenStandardERC721:
		return NewERC721Asset(addr, id)
	case TokenStandardERC1155:
		return NewERC1155Asset(addr, id)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStandard, standard)
	}
}

type assetJSON struct {
	Standard string `json:"standard"`
	Address  string `json:"address,omitempty"`
	TokenID  string `json:"tokenId,omitempty"`
}

func toAssetJSON(a AssetIdentifier) assetJSON {
	out := assetJSON{Standard: string(a.Standard())}
	if addr, ok := AssetAddress(a); ok {
		out.Address = addr.Hex()
	}
	if id, ok := AssetTokenID(a); ok {
		out.TokenID = hexutil.EncodeBig(id)
	}
	return out
}

func (a NativeAsset) MarshalJSON() ([]byte, error)  { return json.Marshal(toAssetJSON(a)) }
func (a ERC20Asset) MarshalJSON() ([]byte, error)   { return json.Marshal(toAssetJSON(a)) }
func (a ERC721Asset) MarshalJSON() ([]byte, error)  { return json.Marshal(toAssetJSON(a)) }
func (a ERC1155Asset) MarshalJSON() ([]byte, error) { return json.Marshal(toAssetJSON(a)) }

// UnmarshalAssetIdentifier decodes the {standard, address?, tokenId?} wire shape.
func UnmarshalAssetIdentifier(data []byte) (AssetIdentifier, error) {
	var raw assetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
	}
	standard, err := ParseTokenStandard(raw.Standard)
	if err != nil {
		return nil, err
	}
	return NewAssetIdentifier(standard, raw.Address, raw.TokenID)
}
