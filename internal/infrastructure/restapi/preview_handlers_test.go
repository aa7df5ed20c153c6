package restapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simulation_preview/internal/app/service"
	"simulation_preview/internal/infrastructure/configloader"
	"simulation_preview/internal/infrastructure/metrics"
	networkdefinition "simulation_preview/internal/infrastructure/network/definition"
	"simulation_preview/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const daiAddress = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWithBodyLimit(t, 0)
}

func newTestRouterWithBodyLimit(t *testing.T, maxBodyBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	previewSvc := service.NewPreviewService(
		networkdefinition.NewNetworkDefinitionProvider(logger.Nop(), nil),
		nil,
		logger.Nop(),
		metrics.NewPreviewMetrics(reg),
		configloader.PreviewConfig{DefaultChainID: 1, MaxBalanceChanges: 2, MaxDisplayDecimals: 6},
	)
	handler := NewPreviewHandler(previewSvc, logger.Nop()).WithMaxBodyBytes(maxBodyBytes)
	return SetupRouter(handler, RouterOptions{Gatherer: reg})
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

const previewBody = `{
	"chainId": 1,
	"balanceChanges": [
		{"asset":{"standard":"ERC20","address":"` + daiAddress + `"},"amount":{"isNegative":false,"quantity":"0xde0b6b3a7640000","decimals":18},"fiatAmount":"1.00"},
		{"asset":{"standard":"NONE"},"amount":{"isNegative":true,"quantity":"0xde0b6b3a7640000","decimals":18}}
	]
}`

func TestCreatePreview_JSON(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/previews", previewBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID             string `json:"id"`
		ChainID        uint64 `json:"chainId"`
		BalanceChanges []struct {
			FiatAmount string `json:"fiatAmount"`
		} `json:"balanceChanges"`
		TotalFiat string `json:"totalFiat"`
		HTML      string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), resp.ChainID)
	require.Len(t, resp.BalanceChanges, 2)
	assert.Equal(t, "1", resp.BalanceChanges[0].FiatAmount)
	assert.Equal(t, "Fiat Unavailable", resp.BalanceChanges[1].FiatAmount)
	assert.Equal(t, "1", resp.TotalFiat)
	assert.Contains(t, resp.HTML, "Not Available")

	_, err = uuid.Parse(w.Header().Get(HeaderRequestID))
	require.NoError(t, err)
}

func TestCreatePreview_HTML(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/previews?format=html", previewBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), `<div class="simulation-preview" data-chain-id="1">`))
}

func TestCreatePreview_Errors(t *testing.T) {
	tooMany := `{"chainId":1,"balanceChanges":[
		{"asset":{"standard":"NONE"},"amount":{"quantity":"0x1","decimals":18}},
		{"asset":{"standard":"NONE"},"amount":{"quantity":"0x1","decimals":18}},
		{"asset":{"standard":"NONE"},"amount":{"quantity":"0x1","decimals":18}}]}`

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed json", "/api/v1/previews", `{`, http.StatusBadRequest, CodeInvalidRequest},
		{"malformed asset", "/api/v1/previews", `{"chainId":1,"balanceChanges":[{"asset":{"standard":"ERC20"},"amount":{"quantity":"0x1","decimals":0}}]}`, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown chain", "/api/v1/previews", `{"chainId":31337,"balanceChanges":[]}`, http.StatusNotFound, CodeUnknownNetwork},
		{"too many changes", "/api/v1/previews", tooMany, http.StatusBadRequest, CodeTooManyChanges},
		{"bad format", "/api/v1/previews?format=xml", `{}`, http.StatusBadRequest, CodeInvalidRequest},
	}
	r := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestCreatePreview_BodyLimit(t *testing.T) {
	r := newTestRouterWithBodyLimit(t, int64(len(previewBody)))

	w := do(t, r, http.MethodPost, "/api/v1/previews", previewBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	padded := previewBody + strings.Repeat(" ", 1024)
	w = do(t, r, http.MethodPost, "/api/v1/previews", padded)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Equal(t, CodeBodyTooLarge, decodeError(t, w).Code)
}

func TestGetPill(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/pills?chainId=56", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `alt="BNB logo"`)
	assert.Contains(t, w.Body.String(), "mm-box--rounded-pill")

	w = do(t, r, http.MethodGet, "/api/v1/pills?standard=erc20&address="+daiAddress+"&format=json", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp PillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Token", resp.Pill.Label)
	assert.Equal(t, `<p class="mm-box mm-text mm-text--body-md">Token</p>`, resp.HTML)

	for target, want := range map[string]int{
		"/api/v1/pills?chainId=abc":                           http.StatusBadRequest,
		"/api/v1/pills?standard=ERC777":                       http.StatusBadRequest,
		"/api/v1/pills?standard=ERC721&address=" + daiAddress: http.StatusBadRequest,
		"/api/v1/pills?chainId=31337":                         http.StatusNotFound,
	} {
		w := do(t, r, http.MethodGet, target, "")
		assert.Equal(t, want, w.Code, target)
	}
}

func TestListNetworksAndHealth(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/networks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Networks []NetworkResponse `json:"networks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Networks, len(networkdefinition.KnownDefinitions()))
	assert.Equal(t, uint64(1), resp.Networks[0].ChainID)
	assert.Contains(t, resp.Networks[0].Pill, "ETH")

	w = do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/v1/previews", `{"chainId":1}`)

	w := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `simulation_preview_previews_total{network="ethereum",outcome="ok"} 1`)
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newTestRouter(t)
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(HeaderRequestID))
}
