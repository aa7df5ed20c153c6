package service

import (
	"context"
	"strings"

	"simulation_preview/internal/app/port"
	"simulation_preview/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// globallyPricedNativeSymbols share one price across every chain that uses them as native asset.
var globallyPricedNativeSymbols = map[string]struct{}{ //nolint:gochecknoglobals
	"eth": {},
}

// fiatServiceImpl implements port.FiatValuator on top of a TokenPriceService.
type fiatServiceImpl struct {
	prices port.TokenPriceService
	logger port.Logger
}

// NewFiatService creates a FiatValuator.
func NewFiatService(prices port.TokenPriceService, l port.Logger) port.FiatValuator {
	return &fiatServiceImpl{
		prices: prices,
		logger: l.With("component", "FiatService"),
	}
}

// Valuate returns price × amount, or the unavailable marker when no positive price is known.
func (s *fiatServiceImpl) Valuate(ctx context.Context, network entity.NetworkDefinition, asset entity.AssetIdentifier, amount entity.Amount) entity.FiatAmount {
	price, ok := s.lookupPrice(ctx, network, asset, nil)
	if !ok {
		return entity.FiatUnavailable()
	}
	return entity.NewFiatAmount(price.Mul(amount.Numeric()))
}

// ValuateAll prices every input lacking a fiat amount with a single batched lookup.
func (s *fiatServiceImpl) ValuateAll(ctx context.Context, network entity.NetworkDefinition, inputs []entity.BalanceChangeInput) []entity.BalanceChange {
	out := make([]entity.BalanceChange, len(inputs))

	var addresses []string
	for _, in := range inputs {
		if in.FiatAmount != nil || in.Asset == nil {
			continue
		}
		if _, ok := s.globalNativePrice(network, in.Asset); ok {
			continue
		}
		if addr, ok := s.priceAddress(network, in.Asset); ok {
			addresses = append(addresses, addr)
		}
	}

	var batch *priceBatch
	if len(addresses) > 0 && network.DEXScreenerChainID != "" {
		prices, err := s.prices.PricesUSD(ctx, network.DEXScreenerChainID, addresses)
		if err != nil {
			s.logger.Warn("Batch price lookup failed, affected rows stay unavailable",
				"network", network.Identifier, "tokenCount", len(addresses), "error", err)
		}
		batch = newPriceBatch(addresses, prices)
	}

	for i, in := range inputs {
		if in.FiatAmount != nil || in.Asset == nil {
			out[i] = in.Resolve(entity.FiatUnavailable())
			continue
		}
		fiat := entity.FiatUnavailable()
		if price, ok := s.lookupPrice(ctx, network, in.Asset, batch); ok {
			fiat = entity.NewFiatAmount(price.Mul(in.Amount.Numeric()))
		}
		out[i] = in.Resolve(fiat)
	}
	return out
}

// priceBatch holds the outcome of one prefetch. Addresses that were requested
// but have no price are not looked up again.
type priceBatch struct {
	requested map[string]struct{}
	prices    map[string]decimal.Decimal
}

func newPriceBatch(addresses []string, prices map[string]decimal.Decimal) *priceBatch {
	b := &priceBatch{requested: make(map[string]struct{}, len(addresses)), prices: prices}
	for _, addr := range addresses {
		b.requested[addr] = struct{}{}
	}
	return b
}

func (b *priceBatch) lookup(addr string) (price decimal.Decimal, found, requested bool) {
	if b == nil {
		return decimal.Zero, false, false
	}
	if _, requested = b.requested[addr]; !requested {
		return decimal.Zero, false, false
	}
	price, found = b.prices[addr]
	return price, found, true
}

// priceAddress returns the ERC20 address whose price values asset.
func (s *fiatServiceImpl) priceAddress(network entity.NetworkDefinition, asset entity.AssetIdentifier) (string, bool) {
	switch a := asset.(type) {
	case entity.NativeAsset:
		wrapped := network.WrappedNativeTokenAddress
		if wrapped == "" || strings.EqualFold(wrapped, entity.ZeroAddress) {
			return "", false
		}
		return strings.ToLower(wrapped), true
	case entity.ERC20Asset:
		return strings.ToLower(a.Address().Hex()), true
	default:
		// NFTs have no fungible price.
		return "", false
	}
}

// globalNativePrice returns the shared price of a native asset priced the same on every chain.
func (s *fiatServiceImpl) globalNativePrice(network entity.NetworkDefinition, asset entity.AssetIdentifier) (decimal.Decimal, bool) {
	if !entity.IsNativeAsset(asset) {
		return decimal.Zero, false
	}
	nativeSymbolLower := strings.ToLower(network.NativeSymbolOrDefault())
	if _, isGloballyPriced := globallyPricedNativeSymbols[nativeSymbolLower]; !isGloballyPriced {
		return decimal.Zero, false
	}
	return s.prices.GetGlobalNativeTokenPrice(nativeSymbolLower)
}

func (s *fiatServiceImpl) lookupPrice(ctx context.Context, network entity.NetworkDefinition, asset entity.AssetIdentifier, batch *priceBatch) (decimal.Decimal, bool) {
	if price, found := s.globalNativePrice(network, asset); found {
		s.logger.Debug("Using globally cached price for native asset", "symbol", network.NativeSymbolOrDefault(), "price", price.String(), "network", network.Name)
		return price, true
	}

	addr, ok := s.priceAddress(network, asset)
	if !ok {
		if entity.IsNativeAsset(asset) {
			s.logger.Warn("WrappedNativeTokenAddress is not defined for network, cannot price native asset",
				"network", network.Identifier, "symbol", network.NativeSymbolOrDefault())
		}
		return decimal.Zero, false
	}

	price, found, requested := batch.lookup(addr)
	if !requested {
		if network.DEXScreenerChainID == "" {
			s.logger.Debug("DEXScreenerChainID not defined for network, fiat unavailable", "network", network.Identifier)
			return decimal.Zero, false
		}
		price, found = s.prices.GetPriceUSD(ctx, network.DEXScreenerChainID, addr)
	}
	if !found || !price.IsPositive() {
		s.logger.Debug("Price not found or zero, fiat unavailable", "network", network.Identifier, "address", addr)
		return decimal.Zero, false
	}

	nativeSymbolLower := strings.ToLower(network.NativeSymbolOrDefault())
	if _, isGloballyPriced := globallyPricedNativeSymbols[nativeSymbolLower]; isGloballyPriced && entity.IsNativeAsset(asset) {
		s.prices.TrySetGlobalNativeTokenPrice(nativeSymbolLower, price)
	}
	return price, true
}
