package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simulation_preview/internal/app/port"
	"simulation_preview/internal/domain/entity"
	"simulation_preview/internal/infrastructure/configloader"
	"simulation_preview/internal/infrastructure/metrics"
	"simulation_preview/internal/view"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownNetwork is returned for a chain id with no network definition.
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrTooManyChanges is returned when a request exceeds the configured change limit.
	ErrTooManyChanges = errors.New("too many balance changes")
)

// previewServiceImpl implements port.PreviewService.
type previewServiceImpl struct {
	networks port.NetworkDefinitionProvider
	fiat     port.FiatValuator
	logger   port.Logger
	metrics  *metrics.PreviewMetrics
	cfg      configloader.PreviewConfig
	newID    func() uuid.UUID
}

// NewPreviewService creates a PreviewService. fiat may be nil, in which case
// missing fiat amounts always render as unavailable.
func NewPreviewService(
	np port.NetworkDefinitionProvider,
	fiat port.FiatValuator,
	l port.Logger,
	m *metrics.PreviewMetrics,
	cfg configloader.PreviewConfig,
) port.PreviewService {
	return &previewServiceImpl{
		networks: np,
		fiat:     fiat,
		logger:   l.With("component", "PreviewService"),
		metrics:  m,
		cfg:      cfg,
		newID:    uuid.New,
	}
}

// BuildPreview values and renders req.
func (s *previewServiceImpl) BuildPreview(ctx context.Context, req port.PreviewRequest) (preview *port.Preview, err error) {
	start := time.Now()
	chainID := req.ChainID
	if chainID == 0 {
		chainID = s.cfg.DefaultChainID
	}
	networkLabel := metrics.UnknownNetwork
	defer func() {
		s.metrics.ObservePreview(networkLabel, outcomeOf(err), time.Since(start))
	}()

	network, ok := s.networks.GetNetworkDefinitionByChainID(chainID)
	if !ok {
		return nil, fmt.Errorf("%w: chain id %d", ErrUnknownNetwork, chainID)
	}
	networkLabel = network.Identifier
	if s.cfg.MaxBalanceChanges > 0 && len(req.BalanceChanges) > s.cfg.MaxBalanceChanges {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyChanges, len(req.BalanceChanges), s.cfg.MaxBalanceChanges)
	}
	for i, in := range req.BalanceChanges {
		if in.Asset == nil {
			return nil, fmt.Errorf("balance change %d: %w", i, entity.ErrInvalidAsset)
		}
	}

	valuate := s.cfg.ValuateByDefault
	if req.Valuate != nil {
		valuate = *req.Valuate
	}

	var changes []entity.BalanceChange
	if valuate && s.fiat != nil {
		changes = s.fiat.ValuateAll(ctx, network, req.BalanceChanges)
	} else {
		changes = make([]entity.BalanceChange, len(req.BalanceChanges))
		for i, in := range req.BalanceChanges {
			changes[i] = in.Resolve(entity.FiatUnavailable())
		}
	}

	list := view.BuildBalanceChangeList(network, changes, view.ListOptions{MaxDisplayDecimals: s.cfg.MaxDisplayDecimals})
	html, err := list.HTML()
	if err != nil {
		s.logger.Error("Failed to render preview", "chainId", chainID, "error", err)
		return nil, err
	}

	for _, change := range changes {
		s.metrics.ObserveRow(change.Asset.Standard().String(), !change.FiatAmount.IsUnavailable())
	}

	preview = &port.Preview{
		ID:             s.newID(),
		ChainID:        chainID,
		Network:        network,
		BalanceChanges: changes,
		List:           list,
		TotalFiat:      totalFiat(changes),
		HTML:           html,
	}
	s.logger.Debug("Preview built",
		"previewId", preview.ID.String(),
		"chainId", chainID,
		"changes", len(changes),
		"valuate", valuate)
	return preview, nil
}

// RenderPill renders the pill of asset on chainID.
func (s *previewServiceImpl) RenderPill(chainID uint64, asset entity.AssetIdentifier) (view.Text, error) {
	if chainID == 0 {
		chainID = s.cfg.DefaultChainID
	}
	network, ok := s.networks.GetNetworkDefinitionByChainID(chainID)
	if !ok {
		return view.Text{}, fmt.Errorf("%w: chain id %d", ErrUnknownNetwork, chainID)
	}
	if asset == nil {
		return view.Text{}, entity.ErrInvalidAsset
	}
	return view.AssetPill(entity.NewAssetInfo(asset, network)), nil
}

// Networks lists the known networks.
func (s *previewServiceImpl) Networks() []entity.NetworkDefinition {
	return s.networks.GetAllNetworkDefinitions()
}

// totalFiat sums available fiat values; unavailable when none is available.
func totalFiat(changes []entity.BalanceChange) entity.FiatAmount {
	total := decimal.Zero
	available := false
	for _, c := range changes {
		if v, ok := c.FiatAmount.Value(); ok {
			total = total.Add(v)
			available = true
		}
	}
	if !available {
		return entity.FiatUnavailable()
	}
	return entity.NewFiatAmount(total)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownNetwork):
		return "unknown_network"
	case errors.Is(err, ErrTooManyChanges):
		return "too_many_changes"
	case errors.Is(err, entity.ErrInvalidAsset):
		return "invalid_request"
	default:
		return "error"
	}
}
