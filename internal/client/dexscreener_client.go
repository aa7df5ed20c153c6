package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"simulation_preview/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the public DEX Screener API.
const DefaultBaseURL = "https://api.dexscreener.com"

// ErrTooManyAddresses is returned when a request exceeds the per-request address limit.
var ErrTooManyAddresses = errors.New("too many token addresses in one request")

// DEXScreenerClient defines the interface for interacting with the DEX Screener API.
type DEXScreenerClient interface {
	GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]entity.PairData, error)
}

// dexScreenerClientImpl is the implementation of DEXScreenerClient.
type dexScreenerClientImpl struct {
	client              fasthttpDoer
	baseURL             string
	timeout             time.Duration
	logger              *zap.Logger
	maxTokensPerRequest int
}

type fasthttpDoer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// NewDEXScreenerClient creates a new instance of dexScreenerClientImpl.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, logger *zap.Logger, maxTokensPerRequest int) DEXScreenerClient {
	return NewDEXScreenerClientWithHTTP(&fasthttp.Client{Name: "simulation-preview"}, baseURL, timeout, logger, maxTokensPerRequest)
}

// NewDEXScreenerClientWithHTTP is NewDEXScreenerClient with a caller-supplied fasthttp client.
func NewDEXScreenerClientWithHTTP(httpClient fasthttpDoer, baseURL string, timeout time.Duration, logger *zap.Logger, maxTokensPerRequest int) DEXScreenerClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dexScreenerClientImpl{
		client:              httpClient,
		baseURL:             strings.TrimRight(baseURL, "/"),
		timeout:             timeout,
		logger:              logger.Named("DEXScreenerClient"),
		maxTokensPerRequest: maxTokensPerRequest,
	}
}

// GetTokenPairsByAddresses implements the DEXScreenerClient interface.
func (c *dexScreenerClientImpl) GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]entity.PairData, error) {
	if len(tokenAddresses) == 0 {
		return nil, fmt.Errorf("tokenAddresses cannot be empty")
	}
	if dexscreenerChainID == "" {
		return nil, fmt.Errorf("dexscreenerChainID cannot be empty")
	}
	if c.maxTokensPerRequest > 0 && len(tokenAddresses) > c.maxTokensPerRequest {
		c.logger.Warn("Number of token addresses exceeds maxTokensPerRequest",
			zap.Int("requestedCount", len(tokenAddresses)),
			zap.Int("maxAllowed", c.maxTokensPerRequest))
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyAddresses, len(tokenAddresses), c.maxTokensPerRequest)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addresses := strings.Join(tokenAddresses, ",")
	requestURL := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, dexscreenerChainID, addresses)

	c.logger.Debug("Requesting token pairs from DEX Screener", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to DEX Screener", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to DEX Screener (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("DEX Screener API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return nil, fmt.Errorf("DEX Screener API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	pairs, err := decodePairs(rawBody)
	if err != nil {
		c.logger.Error("Failed to unmarshal DEX Screener response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}
	if len(pairs) == 0 {
		c.logger.Warn("DEXScreener returned 200 OK with 0 pairs",
			zap.String("dexscreenerChainID", dexscreenerChainID),
			zap.Strings("tokenAddresses", tokenAddresses))
	}

	c.logger.Debug("Successfully unmarshalled DEX Screener response",
		zap.String("dexscreenerChainID", dexscreenerChainID),
		zap.Int("pairCount", len(pairs)))
	return pairs, nil
}

// decodePairs accepts both the bare array and the {"pairs": [...]} wrapper.
func decodePairs(body []byte) ([]entity.PairData, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return []entity.PairData{}, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var wrapper entity.DEXTokenPairs
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, err
		}
		if wrapper.Pairs == nil {
			return []entity.PairData{}, nil
		}
		return wrapper.Pairs, nil
	}
	var directPairs []entity.PairData
	if err := json.Unmarshal(body, &directPairs); err != nil {
		return nil, err
	}
	return directPairs, nil
}
