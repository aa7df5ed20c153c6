package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// TokenPriceService resolves USD prices for tokens.
type TokenPriceService interface {
	// GetPriceUSD returns the USD price of a token on a DEXScreener chain.
	GetPriceUSD(ctx context.Context, dexScreenerChainID string, tokenAddress string) (decimal.Decimal, bool)
	// PricesUSD resolves several tokens at once; addresses without a price are absent
	// from the result. Keys are lower-cased addresses.
	PricesUSD(ctx context.Context, dexScreenerChainID string, tokenAddresses []string) (map[string]decimal.Decimal, error)
	// GetGlobalNativeTokenPrice returns the cached price of a native asset shared across chains (e.g. ETH on L2s).
	GetGlobalNativeTokenPrice(nativeSymbolLower string) (decimal.Decimal, bool)
	// TrySetGlobalNativeTokenPrice caches the price of a native asset shared across chains.
	TrySetGlobalNativeTokenPrice(nativeSymbolLower string, price decimal.Decimal)
}
