package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"simulation_preview/internal/app/port"
	"simulation_preview/internal/domain/entity"
	"simulation_preview/internal/view"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	formatJSON = "json"
	formatHTML = "html"

	contentTypeHTML = "text/html; charset=utf-8"

	// DefaultMaxBodyBytes caps a preview request body.
	DefaultMaxBodyBytes int64 = 1 << 20
)

// NetworkResponse is one entry of GET /networks.
type NetworkResponse struct {
	ChainID          uint64 `json:"chainId"`
	Name             string `json:"name"`
	Identifier       string `json:"identifier"`
	NativeSymbol     string `json:"nativeSymbol"`
	NativeBadgeImage string `json:"nativeBadgeImage"`
	Pill             string `json:"pill"`
}

// PillResponse is the JSON form of GET /pills.
type PillResponse struct {
	Pill view.Text `json:"pill"`
	HTML string    `json:"html"`
}

// PreviewHandler обрабатывает HTTP запросы превью.
type PreviewHandler struct {
	previewService port.PreviewService
	logger         port.Logger
	maxBodyBytes   int64
}

// NewPreviewHandler создает новый экземпляр PreviewHandler.
func NewPreviewHandler(ps port.PreviewService, l port.Logger) *PreviewHandler {
	return &PreviewHandler{
		previewService: ps,
		logger:         l.With("component", "PreviewHandler"),
		maxBodyBytes:   DefaultMaxBodyBytes,
	}
}

// WithMaxBodyBytes sets the request body limit; n <= 0 keeps the default.
func (h *PreviewHandler) WithMaxBodyBytes(n int64) *PreviewHandler {
	if n > 0 {
		h.maxBodyBytes = n
	}
	return h
}

func responseFormat(c *gin.Context, def string) (string, error) {
	format := strings.ToLower(c.DefaultQuery("format", def))
	if format != formatJSON && format != formatHTML {
		return "", fmt.Errorf("%w: unsupported format %q", errBadRequest, format)
	}
	return format, nil
}

// CreatePreview handles POST /api/v1/previews.
func (h *PreviewHandler) CreatePreview(c *gin.Context) {
	format, err := responseFormat(c, formatJSON)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit))
			return
		}
		abortWithError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	var req port.PreviewRequest
	if err := json.Unmarshal(body, &req); err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	preview, err := h.previewService.BuildPreview(c.Request.Context(), req)
	if err != nil {
		h.logger.Debug("Preview rejected", "requestId", RequestID(c), "error", err)
		abortWithError(c, err)
		return
	}

	if format == formatHTML {
		c.Data(http.StatusOK, contentTypeHTML, []byte(preview.HTML))
		return
	}
	c.JSON(http.StatusOK, preview)
}

// GetPill handles GET /api/v1/pills.
func (h *PreviewHandler) GetPill(c *gin.Context) {
	format, err := responseFormat(c, formatHTML)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var chainID uint64
	if raw := c.Query("chainId"); raw != "" {
		chainID, err = strconv.ParseUint(raw, 0, 64)
		if err != nil {
			abortWithError(c, fmt.Errorf("%w: chainId %q", errBadRequest, raw))
			return
		}
	}

	standard, err := entity.ParseTokenStandard(c.DefaultQuery("standard", string(entity.TokenStandardNone)))
	if err != nil {
		abortWithError(c, err)
		return
	}
	asset, err := entity.NewAssetIdentifier(standard, c.Query("address"), c.Query("tokenId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	pill, err := h.previewService.RenderPill(chainID, asset)
	if err != nil {
		abortWithError(c, err)
		return
	}
	html, err := pill.HTML()
	if err != nil {
		abortWithError(c, err)
		return
	}

	if format == formatHTML {
		c.Data(http.StatusOK, contentTypeHTML, []byte(html))
		return
	}
	c.JSON(http.StatusOK, PillResponse{Pill: pill, HTML: string(html)})
}

// ListNetworks handles GET /api/v1/networks.
func (h *PreviewHandler) ListNetworks(c *gin.Context) {
	defs := h.previewService.Networks()
	out := make([]NetworkResponse, 0, len(defs))
	for _, def := range defs {
		pill, err := view.AssetPill(entity.NewAssetInfo(entity.NewNativeAsset(), def)).HTML()
		if err != nil {
			abortWithError(c, err)
			return
		}
		out = append(out, NetworkResponse{
			ChainID:          def.ChainID,
			Name:             def.Name,
			Identifier:       def.Identifier,
			NativeSymbol:     def.NativeSymbolOrDefault(),
			NativeBadgeImage: def.BadgeImageOrDefault(),
			Pill:             string(pill),
		})
	}
	c.JSON(http.StatusOK, gin.H{"networks": out})
}

// Health handles GET /healthz.
func (h *PreviewHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
