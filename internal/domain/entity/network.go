package entity

// DefaultNativeBadgeImage is the badge shown next to a native asset when the
// network does not configure its own.
const DefaultNativeBadgeImage = "./images/eth_badge.svg"

// DefaultNativeSymbol is used when a network definition carries no symbol.
const DefaultNativeSymbol = "ETH"

// ZeroAddress represents the Ethereum zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// NetworkDefinition holds what the preview needs to know about a chain:
// how to label its native asset and how to price it.
type NetworkDefinition struct {
	ChainID                   uint64 `json:"chainId" yaml:"chainId"`
	Name                      string `json:"name" yaml:"name"`
	Identifier                string `json:"identifier" yaml:"identifier"` // e.g. "ethereum", "bsc"
	NativeSymbol              string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals                  uint8  `json:"decimals" yaml:"decimals"` // native asset decimals
	NativeBadgeImage          string `json:"nativeBadgeImage" yaml:"nativeBadgeImage"`
	BlockExplorerURL          string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	DEXScreenerChainID        string `json:"-" yaml:"dexScreenerChainId"`
	WrappedNativeTokenAddress string `json:"-" yaml:"wrappedNativeTokenAddress"`
}

// NativeSymbolOrDefault returns the native symbol, falling back to ETH.
func (n NetworkDefinition) NativeSymbolOrDefault() string {
	if n.NativeSymbol == "" {
		return DefaultNativeSymbol
	}
	return n.NativeSymbol
}

// BadgeImageOrDefault returns the native badge image path.
func (n NetworkDefinition) BadgeImageOrDefault() string {
	if n.NativeBadgeImage == "" {
		return DefaultNativeBadgeImage
	}
	return n.NativeBadgeImage
}

// NativeDecimalsOrDefault returns the native decimals, 18 when unset.
func (n NetworkDefinition) NativeDecimalsOrDefault() uint8 {
	if n.Decimals == 0 {
		return 18
	}
	return n.Decimals
}
