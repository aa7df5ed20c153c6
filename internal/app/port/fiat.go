package port

import (
	"context"

	"simulation_preview/internal/domain/entity"
)

// FiatValuator estimates the fiat value of balance changes.
type FiatValuator interface {
	// Valuate returns the fiat value of a single change, or the unavailable marker.
	Valuate(ctx context.Context, network entity.NetworkDefinition, asset entity.AssetIdentifier, amount entity.Amount) entity.FiatAmount
	// ValuateAll values every input whose fiat amount is missing and returns resolved changes in input order.
	ValuateAll(ctx context.Context, network entity.NetworkDefinition, inputs []entity.BalanceChangeInput) []entity.BalanceChange
}
