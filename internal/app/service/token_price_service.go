package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"simulation_preview/internal/app/port"
	"simulation_preview/internal/client"
	dex_types "simulation_preview/internal/entity"
	"simulation_preview/internal/infrastructure/configloader"
	"simulation_preview/internal/pkg/utils"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	stablecoinUSDCSymbol = "USDC"
	stablecoinUSDTSymbol = "USDT"
	stablecoinDAISymbol  = "DAI"
)

var stablecoinSymbols = map[string]struct{}{
	stablecoinUSDCSymbol: {},
	stablecoinUSDTSymbol: {},
	stablecoinDAISymbol:  {},
}

// negativeCacheTTL bounds how long a token without a price is remembered.
const negativeCacheTTL = time.Minute

// noPrice marks a cached lookup that returned no usable pair.
type noPrice struct{}

// tokenPriceServiceImpl implements port.TokenPriceService
type tokenPriceServiceImpl struct {
	dexscreenerClient client.DEXScreenerClient
	logger            port.Logger
	cfg               configloader.TokenPriceServiceConfig
	// key "dexID_lowercaseAddress" -> decimal.Decimal or noPrice,
	// key "global_symbol" -> decimal.Decimal for natives shared across chains
	pricesCache *cache.Cache
	limiter     *rate.Limiter
	negativeTTL time.Duration
}

// NewTokenPriceService creates a new instance of tokenPriceServiceImpl.
func NewTokenPriceService(
	dsc client.DEXScreenerClient,
	l port.Logger,
	cfg configloader.TokenPriceServiceConfig,
) port.TokenPriceService {
	if cfg.MaxTokensPerBatchRequest <= 0 {
		cfg.MaxTokensPerBatchRequest = 30
	}
	if cfg.CacheTTLMinutes <= 0 {
		cfg.CacheTTLMinutes = 5
	}
	if cfg.MaxConcurrentRequests <= 0 {
		cfg.MaxConcurrentRequests = 4
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.BurstLimit <= 0 {
		cfg.BurstLimit = cfg.MaxConcurrentRequests
	}

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	negativeTTL := negativeCacheTTL
	if ttl < negativeTTL {
		negativeTTL = ttl
	}

	s := &tokenPriceServiceImpl{
		dexscreenerClient: dsc,
		logger:            l.With("component", "TokenPriceService"),
		cfg:               cfg,
		pricesCache:       cache.New(ttl, 10*time.Minute),
		limiter:           rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.BurstLimit),
		negativeTTL:       negativeTTL,
	}
	s.logger.Info("TokenPriceService initialized",
		"cacheTTLMinutes", cfg.CacheTTLMinutes,
		"maxTokensPerBatchRequest", cfg.MaxTokensPerBatchRequest,
		"maxConcurrentRequests", cfg.MaxConcurrentRequests)
	return s
}

func priceCacheKey(dexID, address string) string {
	return dexID + "_" + strings.ToLower(address)
}

func globalNativeCacheKey(nativeSymbolLower string) string {
	return "global_" + nativeSymbolLower
}

// GetGlobalNativeTokenPrice возвращает цену для глобально отслеживаемого нативного токена, если она есть в кеше.
func (s *tokenPriceServiceImpl) GetGlobalNativeTokenPrice(nativeSymbolLower string) (decimal.Decimal, bool) {
	cached, found := s.pricesCache.Get(globalNativeCacheKey(nativeSymbolLower))
	if !found {
		return decimal.Zero, false
	}
	price, ok := cached.(decimal.Decimal)
	return price, ok
}

// TrySetGlobalNativeTokenPrice пытается установить цену для глобально отслеживаемого нативного токена.
// The price expires with the rest of the price cache.
func (s *tokenPriceServiceImpl) TrySetGlobalNativeTokenPrice(nativeSymbolLower string, price decimal.Decimal) {
	if !price.IsPositive() {
		s.logger.Debug("Attempted to cache zero or negative global native price, skipping.", "symbol", nativeSymbolLower, "price", price.String())
		return
	}
	s.pricesCache.SetDefault(globalNativeCacheKey(nativeSymbolLower), price)
	s.logger.Debug("Global native token price cached/updated", "symbol", nativeSymbolLower, "price", price.String())
}

// GetPriceUSD returns the cached or freshly fetched price of one token.
func (s *tokenPriceServiceImpl) GetPriceUSD(ctx context.Context, dexScreenerChainID string, tokenAddress string) (decimal.Decimal, bool) {
	prices, err := s.PricesUSD(ctx, dexScreenerChainID, []string{tokenAddress})
	if err != nil {
		s.logger.Warn("Price lookup failed", "dexScreenerID", dexScreenerChainID, "tokenAddress", tokenAddress, "error", err)
	}
	price, ok := prices[strings.ToLower(tokenAddress)]
	return price, ok
}

// PricesUSD implements port.TokenPriceService. Cached entries are served
// directly, the rest are fetched from DEXScreener in rate limited batches.
// Prices found before an error are still returned.
func (s *tokenPriceServiceImpl) PricesUSD(ctx context.Context, dexScreenerChainID string, tokenAddresses []string) (map[string]decimal.Decimal, error) {
	result := make(map[string]decimal.Decimal, len(tokenAddresses))
	if dexScreenerChainID == "" {
		return result, fmt.Errorf("dexScreenerChainID is empty")
	}

	normalized := make([]string, 0, len(tokenAddresses))
	for _, addr := range tokenAddresses {
		if addr = strings.ToLower(strings.TrimSpace(addr)); addr != "" {
			normalized = append(normalized, addr)
		}
	}

	var missing []string
	for _, addr := range utils.UniqueStrings(normalized) {
		cached, found := s.pricesCache.Get(priceCacheKey(dexScreenerChainID, addr))
		if !found {
			missing = append(missing, addr)
			continue
		}
		if price, ok := cached.(decimal.Decimal); ok {
			result[addr] = price
		}
	}
	if len(missing) == 0 {
		return result, nil
	}

	s.logger.Debug("Fetching prices", "dexScreenerID", dexScreenerChainID, "tokenCount", len(missing))

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.cfg.MaxConcurrentRequests)

	for _, batch := range utils.BatchStrings(missing, s.cfg.MaxTokensPerBatchRequest) {
		batch := batch
		g.Go(func() error {
			prices, err := s.fetchBatch(ctx, dexScreenerChainID, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			for addr, price := range prices {
				result[addr] = price
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

func (s *tokenPriceServiceImpl) fetchBatch(ctx context.Context, dexscreenerID string, batch []string) (map[string]decimal.Decimal, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqCtx := ctx
	if s.cfg.RequestTimeoutMillis > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeoutMillis)*time.Millisecond)
		defer cancel()
	}

	pairs, err := s.dexscreenerClient.GetTokenPairsByAddresses(reqCtx, dexscreenerID, batch)
	if err != nil {
		s.logger.Error("Failed to get token pairs from DEXScreener",
			"dexScreenerID", dexscreenerID,
			"token_addresses_count", len(batch),
			"error", err)
		return nil, fmt.Errorf("dexscreener %s: %w", dexscreenerID, err)
	}

	pairsByBaseToken := make(map[string][]dex_types.PairData)
	for _, pair := range pairs {
		key := strings.ToLower(pair.BaseToken.Address)
		pairsByBaseToken[key] = append(pairsByBaseToken[key], pair)
	}

	prices := make(map[string]decimal.Decimal, len(batch))
	for _, addr := range batch {
		priceStr := s.selectBestPriceFromPairs(pairsByBaseToken[addr], addr)
		price, errConv := decimal.NewFromString(priceStr)
		if priceStr == "" || errConv != nil || !price.IsPositive() {
			if errConv != nil && priceStr != "" {
				s.logger.Warn("Failed to parse token price from DEXScreener",
					"dexScreenerID", dexscreenerID,
					"tokenAddress", addr,
					"price_string", priceStr,
					"error", errConv)
			}
			s.pricesCache.Set(priceCacheKey(dexscreenerID, addr), noPrice{}, s.negativeTTL)
			continue
		}
		s.pricesCache.SetDefault(priceCacheKey(dexscreenerID, addr), price)
		prices[addr] = price
		s.logger.Debug("Cached price for token",
			"dexScreenerID", dexscreenerID,
			"tokenAddress", addr,
			"priceUSD", price.String())
	}
	return prices, nil
}

// selectBestPriceFromPairs prefers the deepest stablecoin-quoted pair, then the deepest pair overall.
func (s *tokenPriceServiceImpl) selectBestPriceFromPairs(pairs []dex_types.PairData, baseTokenAddress string) string {
	if len(pairs) == 0 {
		return ""
	}

	var bestOverallPair *dex_types.PairData
	var bestStablecoinPair *dex_types.PairData

	for i := range pairs {
		pair := &pairs[i]
		if !strings.EqualFold(pair.BaseToken.Address, baseTokenAddress) {
			continue
		}
		if pair.PriceUsd == "" || pair.PriceUsd == "0" {
			continue
		}

		if _, isStablecoin := stablecoinSymbols[strings.ToUpper(pair.QuoteToken.Symbol)]; isStablecoin {
			if bestStablecoinPair == nil || pair.LiquidityUSD() > bestStablecoinPair.LiquidityUSD() {
				bestStablecoinPair = pair
			}
		}
		if bestOverallPair == nil || pair.LiquidityUSD() > bestOverallPair.LiquidityUSD() {
			bestOverallPair = pair
		}
	}

	if bestStablecoinPair != nil {
		s.logger.Debug("Selected best price from stablecoin pair",
			"baseTokenAddress", baseTokenAddress,
			"pairAddress", bestStablecoinPair.PairAddress,
			"priceUsd", bestStablecoinPair.PriceUsd,
			"liquidityUsd", bestStablecoinPair.LiquidityUSD(),
			"quoteToken", bestStablecoinPair.QuoteToken.Symbol)
		return bestStablecoinPair.PriceUsd
	}

	if bestOverallPair != nil {
		s.logger.Debug("Selected best price from overall highest liquidity pair",
			"baseTokenAddress", baseTokenAddress,
			"pairAddress", bestOverallPair.PairAddress,
			"priceUsd", bestOverallPair.PriceUsd,
			"liquidityUsd", bestOverallPair.LiquidityUSD(),
			"quoteToken", bestOverallPair.QuoteToken.Symbol)
		return bestOverallPair.PriceUsd
	}

	s.logger.Warn("No suitable price found from pairs",
		"baseTokenAddress", baseTokenAddress,
		"evaluatedPairCount", len(pairs))
	return ""
}
