package networkdefinition

import (
	"fmt"
	"sort"
	"strings"

	"simulation_preview/internal/app/port"
	"simulation_preview/internal/domain/entity"
)

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	byChain map[uint64]entity.NetworkDefinition
	ordered []entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:                   1,
		Name:                      "Ethereum Mainnet",
		Identifier:                "ethereum",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		NativeBadgeImage:          entity.DefaultNativeBadgeImage,
		BlockExplorerURL:          "https://etherscan.io",
		DEXScreenerChainID:        "ethereum",
		WrappedNativeTokenAddress: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
	}
	BSC = entity.NetworkDefinition{
		ChainID:                   56,
		Name:                      "BNB Smart Chain",
		Identifier:                "bsc",
		NativeSymbol:              "BNB",
		Decimals:                  18,
		NativeBadgeImage:          "./images/bnb.svg",
		BlockExplorerURL:          "https://bscscan.com",
		DEXScreenerChainID:        "bsc",
		WrappedNativeTokenAddress: "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c", // WBNB
	}
	Polygon = entity.NetworkDefinition{
		ChainID:                   137,
		Name:                      "Polygon PoS",
		Identifier:                "polygon",
		NativeSymbol:              "POL",
		Decimals:                  18,
		NativeBadgeImage:          "./images/pol-token.svg",
		BlockExplorerURL:          "https://polygonscan.com",
		DEXScreenerChainID:        "polygon",
		WrappedNativeTokenAddress: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", // WPOL
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:                   42161,
		Name:                      "Arbitrum One",
		Identifier:                "arbitrum",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		NativeBadgeImage:          entity.DefaultNativeBadgeImage,
		BlockExplorerURL:          "https://arbiscan.io",
		DEXScreenerChainID:        "arbitrum",
		WrappedNativeTokenAddress: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", // WETH on Arbitrum
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:                   43114,
		Name:                      "Avalanche C-Chain",
		Identifier:                "avalanche",
		NativeSymbol:              "AVAX",
		Decimals:                  18,
		NativeBadgeImage:          "./images/avax-token.svg",
		BlockExplorerURL:          "https://snowtrace.io",
		DEXScreenerChainID:        "avalanche",
		WrappedNativeTokenAddress: "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", // WAVAX
	}
	Base = entity.NetworkDefinition{
		ChainID:                   8453,
		Name:                      "Base Mainnet",
		Identifier:                "base",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		NativeBadgeImage:          entity.DefaultNativeBadgeImage,
		BlockExplorerURL:          "https://basescan.org",
		DEXScreenerChainID:        "base",
		WrappedNativeTokenAddress: "0x4200000000000000000000000000000000000006", // WETH on Base
	}
	Linea = entity.NetworkDefinition{
		ChainID:                   59144,
		Name:                      "Linea Mainnet",
		Identifier:                "linea",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		NativeBadgeImage:          entity.DefaultNativeBadgeImage,
		BlockExplorerURL:          "https://lineascan.build",
		DEXScreenerChainID:        "linea",
		WrappedNativeTokenAddress: "0xe5D7C2a44FfDDf6b295A15c148167daaAf5Cf34f", // WETH on Linea
	}
	Optimism = entity.NetworkDefinition{
		ChainID:                   10,
		Name:                      "OP Mainnet",
		Identifier:                "optimism",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		NativeBadgeImage:          entity.DefaultNativeBadgeImage,
		BlockExplorerURL:          "https://optimistic.etherscan.io",
		DEXScreenerChainID:        "optimism",
		WrappedNativeTokenAddress: "0x4200000000000000000000000000000000000006", // WETH on Optimism
	}
)

// KnownDefinitions lists every hardcoded definition.
func KnownDefinitions() []entity.NetworkDefinition {
	return []entity.NetworkDefinition{Ethereum, BSC, Polygon, Arbitrum, Avalanche, Base, Linea, Optimism}
}

// NewNetworkDefinitionProvider creates a provider over the known definitions.
// badgeOverrides replaces the native badge image per chain id.
func NewNetworkDefinitionProvider(log port.Logger, badgeOverrides map[uint64]string) *NetworkDefinitionProvider {
	return NewNetworkDefinitionProviderFrom(log, KnownDefinitions(), badgeOverrides)
}

// NewNetworkDefinitionProviderFrom creates a provider over defs.
func NewNetworkDefinitionProviderFrom(log port.Logger, defs []entity.NetworkDefinition, badgeOverrides map[uint64]string) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:  log,
		byChain: make(map[uint64]entity.NetworkDefinition, len(defs)),
	}

	for _, def := range defs {
		if _, dup := p.byChain[def.ChainID]; dup {
			p.logger.Warn(fmt.Sprintf("Duplicate network definition for chain %d, keeping the first one", def.ChainID), "identifier", def.Identifier)
			continue
		}
		if image, ok := badgeOverrides[def.ChainID]; ok && image != "" {
			def.NativeBadgeImage = image
			p.logger.Debug("Native badge image overridden", "network", def.Identifier, "image", image)
		}
		p.byChain[def.ChainID] = def
		p.ordered = append(p.ordered, def)
	}
	sort.Slice(p.ordered, func(i, j int) bool { return p.ordered[i].ChainID < p.ordered[j].ChainID })

	for chainID := range badgeOverrides {
		if _, ok := p.byChain[chainID]; !ok {
			p.logger.Warn(fmt.Sprintf("Badge image configured for unknown chain %d. Skipping.", chainID))
		}
	}

	p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Known networks: %d", len(p.ordered)))
	return p
}

// GetAllNetworkDefinitions returns a copy of all definitions ordered by chain id.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.ordered))
	copy(defsCopy, p.ordered)
	return defsCopy
}

// GetNetworkDefinitionByChainID returns the definition for chainID.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.byChain[chainID]
	return def, ok
}

// GetNetworkDefinitionByName returns a specific network definition by its identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.ordered {
		if strings.EqualFold(def.Identifier, identifier) {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)
