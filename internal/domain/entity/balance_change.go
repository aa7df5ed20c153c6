package entity

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// BalanceChange describes a change in an asset's balance to a user's wallet,
// as predicted by simulating a pending transaction.
type BalanceChange struct {
	Asset      AssetIdentifier
	Amount     Amount
	FiatAmount FiatAmount
}

// BalanceChangeInput is a balance change as received from a simulation
// engine. FiatAmount is nil when the producer did not value the change.
type BalanceChangeInput struct {
	Asset      AssetIdentifier
	Amount     Amount
	FiatAmount *FiatAmount
}

// Resolve turns the input into a BalanceChange, using fiat when the input
// carries no fiat value of its own.
func (in BalanceChangeInput) Resolve(fiat FiatAmount) BalanceChange {
	out := BalanceChange{Asset: in.Asset, Amount: in.Amount, FiatAmount: fiat}
	if in.FiatAmount != nil {
		out.FiatAmount = *in.FiatAmount
	}
	return out
}

func (c BalanceChange) MarshalJSON() ([]byte, error) {
	if c.Asset == nil {
		return nil, fmt.Errorf("%w: balance change has no asset", ErrInvalidAsset)
	}
	asset, err := json.Marshal(c.Asset)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Asset      jsoniter.RawMessage `json:"asset"`
		Amount     Amount              `json:"amount"`
		FiatAmount FiatAmount          `json:"fiatAmount"`
	}{Asset: asset, Amount: c.Amount, FiatAmount: c.FiatAmount})
}

// UnmarshalJSON decodes a balance change; a missing fiatAmount decodes as unavailable.
func (c *BalanceChange) UnmarshalJSON(data []byte) error {
	var in BalanceChangeInput
	if err := in.UnmarshalJSON(data); err != nil {
		return err
	}
	*c = in.Resolve(FiatUnavailable())
	return nil
}

func (in *BalanceChangeInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Asset      jsoniter.RawMessage `json:"asset"`
		Amount     *Amount             `json:"amount"`
		FiatAmount *FiatAmount         `json:"fiatAmount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode balance change: %w", err)
	}
	if len(raw.Asset) == 0 || string(raw.Asset) == "null" {
		return fmt.Errorf("%w: asset is required", ErrInvalidAsset)
	}
	asset, err := UnmarshalAssetIdentifier(raw.Asset)
	if err != nil {
		return err
	}
	if raw.Amount == nil {
		return fmt.Errorf("%w: amount is required", ErrInvalidQuantity)
	}
	*in = BalanceChangeInput{Asset: asset, Amount: *raw.Amount, FiatAmount: raw.FiatAmount}
	return nil
}
