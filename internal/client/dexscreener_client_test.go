package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler fasthttp.RequestHandler, maxTokens int) DEXScreenerClient {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = fasthttp.Serve(ln, handler) }()
	t.Cleanup(func() { _ = ln.Close() })

	httpClient := &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
	return NewDEXScreenerClientWithHTTP(httpClient, "http://dexscreener.test/", time.Second, zap.NewNop(), maxTokens)
}

func TestGetTokenPairsByAddresses_DirectArray(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Path())
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`[{"chainId":"ethereum","pairAddress":"0xpair","baseToken":{"address":"0xAAA","symbol":"AAA"},"quoteToken":{"symbol":"USDC"},"priceUsd":"1.25","liquidity":{"usd":1000}}]`)
	}, 30)

	pairs, err := c.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0xAAA", "0xBBB"})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "/tokens/v1/ethereum/0xAAA,0xBBB", gotPath)
	assert.Equal(t, "1.25", pairs[0].PriceUsd)
	assert.Equal(t, "USDC", pairs[0].QuoteToken.Symbol)
	assert.InDelta(t, 1000.0, pairs[0].LiquidityUSD(), 0.0001)
}

func TestGetTokenPairsByAddresses_WrappedObject(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"schemaVersion":"1.0.0","pairs":[{"baseToken":{"address":"0xAAA"},"priceUsd":"2"}]}`)
	}, 30)

	pairs, err := c.GetTokenPairsByAddresses(context.Background(), "base", []string{"0xAAA"})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Nil(t, pairs[0].Liquidity)
	assert.Zero(t, pairs[0].LiquidityUSD())
}

func TestGetTokenPairsByAddresses_NullPairs(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"schemaVersion":"1.0.0","pairs":null}`)
	}, 30)

	pairs, err := c.GetTokenPairsByAddresses(context.Background(), "base", []string{"0xAAA"})
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestGetTokenPairsByAddresses_Non200(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
	}, 30)

	_, err := c.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0xAAA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGetTokenPairsByAddresses_BadBody(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`not json`)
	}, 30)

	_, err := c.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0xAAA"})
	require.Error(t, err)
}

func TestGetTokenPairsByAddresses_Validation(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		t.Error("no request expected")
	}, 2)

	_, err := c.GetTokenPairsByAddresses(context.Background(), "ethereum", nil)
	require.Error(t, err)

	_, err = c.GetTokenPairsByAddresses(context.Background(), "", []string{"0xAAA"})
	require.Error(t, err)

	_, err = c.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0x1", "0x2", "0x3"})
	require.ErrorIs(t, err, ErrTooManyAddresses)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.GetTokenPairsByAddresses(ctx, "ethereum", []string{"0x1"})
	require.ErrorIs(t, err, context.Canceled)
}
