package entity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AssetInfo is the display-side description of an asset, enough to draw a
// pill for it. It is derived from an AssetIdentifier plus network facts.
type AssetInfo struct {
	IsNative bool
	Standard TokenStandard
	Symbol   string
	Image    string
	Address  *common.Address
	TokenID  *big.Int
}

// NewAssetInfo describes asset as seen on network.
func NewAssetInfo(asset AssetIdentifier, network NetworkDefinition) AssetInfo {
	info := AssetInfo{
		IsNative: IsNativeAsset(asset),
		Standard: asset.Standard(),
	}
	if info.IsNative {
		info.Symbol = network.NativeSymbolOrDefault()
		info.Image = network.BadgeImageOrDefault()
		return info
	}
	if addr, ok := AssetAddress(asset); ok {
		info.Address = &addr
	}
	if id, ok := AssetTokenID(asset); ok {
		info.TokenID = id
	}
	return info
}
