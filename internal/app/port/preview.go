package port

import (
	"context"
	"html/template"

	"simulation_preview/internal/domain/entity"
	"simulation_preview/internal/view"

	"github.com/google/uuid"
)

// PreviewRequest is a simulated transaction outcome to display.
type PreviewRequest struct {
	ChainID        uint64                      `json:"chainId"`
	BalanceChanges []entity.BalanceChangeInput `json:"balanceChanges"`
	// Valuate overrides the configured default for filling missing fiat amounts.
	Valuate *bool `json:"valuate,omitempty"`
}

// Preview is the rendered outcome of a PreviewRequest.
type Preview struct {
	ID             uuid.UUID                `json:"id"`
	ChainID        uint64                   `json:"chainId"`
	Network        entity.NetworkDefinition `json:"network"`
	BalanceChanges []entity.BalanceChange   `json:"balanceChanges"`
	List           view.BalanceChangeList   `json:"list"`
	TotalFiat      entity.FiatAmount        `json:"totalFiat"`
	HTML           template.HTML            `json:"html"`
}

// PreviewService builds previews and single pills.
type PreviewService interface {
	BuildPreview(ctx context.Context, req PreviewRequest) (*Preview, error)
	RenderPill(chainID uint64, asset entity.AssetIdentifier) (view.Text, error)
	Networks() []entity.NetworkDefinition
}
