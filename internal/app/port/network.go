package port

import "simulation_preview/internal/domain/entity"

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all known network definitions, ordered by chain id.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByChainID returns the definition for chainID and true, or false if unknown.
	GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool)

	// GetNetworkDefinitionByName returns the definition whose identifier matches, case-insensitively.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)
}
