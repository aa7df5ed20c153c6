package view

import (
	"math/big"
	"strings"
	"testing"

	"simulation_preview/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func change(t *testing.T, asset entity.AssetIdentifier, negative bool, quantity int64, decimals uint8, fiat entity.FiatAmount) entity.BalanceChange {
	t.Helper()
	amount, err := entity.NewAmount(negative, big.NewInt(quantity), decimals)
	require.NoError(t, err)
	return entity.BalanceChange{Asset: asset, Amount: amount, FiatAmount: fiat}
}

func TestBuildBalanceChangeList(t *testing.T) {
	dai := entity.NewERC20Asset(common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"))
	changes := []entity.BalanceChange{
		change(t, dai, false, 5_000_000_000_000_000_000, 18, entity.NewFiatAmount(decimal.NewFromInt(5))),
		change(t, entity.NewNativeAsset(), true, 1_000_000_000_000_000_000, 18, entity.NewFiatAmount(decimal.NewFromInt(-3000))),
		change(t, dai, false, 1, 0, entity.FiatUnavailable()),
	}

	list := BuildBalanceChangeList(mainnet, changes, ListOptions{MaxDisplayDecimals: 6})

	require.Len(t, list.Outgoing.Rows, 1)
	require.Len(t, list.Incoming.Rows, 2)
	assert.Equal(t, "ETH", list.Outgoing.Rows[0].Pill.Label)
	assert.Equal(t, "- 1", list.Outgoing.Rows[0].AmountText)
	assert.Equal(t, "-$3000.00", list.Outgoing.Rows[0].FiatText)

	assert.Equal(t, "+ 5", list.Incoming.Rows[0].AmountText)
	assert.Equal(t, "$5.00", list.Incoming.Rows[0].FiatText)
	assert.Equal(t, FiatUnavailableText, list.Incoming.Rows[1].FiatText)
	assert.False(t, list.Incoming.Rows[1].FiatAvailable)

	assert.True(t, list.TotalFiatAvailable)
	assert.Equal(t, "-$2995.00", list.TotalFiatText)

	rows := list.Rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].IsNegative)
}

func TestBuildBalanceChangeList_AllUnavailable(t *testing.T) {
	list := BuildBalanceChangeList(mainnet, []entity.BalanceChange{
		change(t, entity.NewNativeAsset(), false, 1, 18, entity.FiatUnavailable()),
	}, ListOptions{MaxDisplayDecimals: 6})

	assert.False(t, list.TotalFiatAvailable)
	assert.Equal(t, FiatUnavailableText, list.TotalFiatText)
	assert.Equal(t, "+ <0.000001", list.Incoming.Rows[0].AmountText)
}

func TestBuildRow_ZeroFiatIsNotUnavailable(t *testing.T) {
	row := BuildRow(
		change(t, entity.NewNativeAsset(), false, 0, 18, entity.NewFiatAmount(decimal.Zero)),
		entity.NewAssetInfo(entity.NewNativeAsset(), mainnet),
		ListOptions{MaxDisplayDecimals: 6},
	)
	assert.True(t, row.FiatAvailable)
	assert.Equal(t, "$0.00", row.FiatText)
	assert.Equal(t, "+ 0", row.AmountText)
}

func TestBalanceChangeList_HTML(t *testing.T) {
	list := BuildBalanceChangeList(mainnet, []entity.BalanceChange{
		change(t, entity.NewNativeAsset(), false, 2_000_000_000_000_000_000, 18, entity.FiatUnavailable()),
		change(t, entity.NewNativeAsset(), true, 1_000_000_000_000_000_000, 18, entity.FiatUnavailable()),
	}, ListOptions{MaxDisplayDecimals: 6})

	html, err := list.HTML()
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, `data-chain-id="1"`)
	assert.Contains(t, out, "Not Available")
	assert.Contains(t, out, "simulation-preview__row--outgoing")
	// html/template escapes "+" in text content.
	assert.Less(t, strings.Index(out, "- 1"), strings.Index(out, "&#43; 2"))
	assert.NotContains(t, out, "No changes predicted")
}

func TestBalanceChangeList_Empty(t *testing.T) {
	list := BuildBalanceChangeList(mainnet, nil, ListOptions{})
	assert.True(t, list.Empty())

	html, err := list.HTML()
	require.NoError(t, err)
	assert.Contains(t, string(html), "No changes predicted")
	assert.NotContains(t, string(html), "You send")

	text := list.Text()
	assert.Contains(t, text, "No changes predicted")
	assert.Contains(t, text, "Total: Not Available")
}

func TestBalanceChangeList_Text(t *testing.T) {
	list := BuildBalanceChangeList(mainnet, []entity.BalanceChange{
		change(t, entity.NewNativeAsset(), true, 500_000_000_000_000_000, 18, entity.NewFiatAmount(decimal.NewFromInt(-1500))),
	}, ListOptions{MaxDisplayDecimals: 6})

	text := list.Text()
	assert.True(t, strings.HasPrefix(text, "You send\n"))
	assert.Contains(t, text, "- 0.5")
	assert.Contains(t, text, "-$1500.00")
	assert.NotContains(t, text, "You receive")
}

func TestBuildRow_ZeroOptionsUseDefaultDecimals(t *testing.T) {
	halfETH := change(t, entity.NewNativeAsset(), false, 500_000_000_000_000_000, 18, entity.FiatUnavailable())

	row := BuildRow(halfETH, entity.NewAssetInfo(halfETH.Asset, mainnet), ListOptions{})
	assert.Equal(t, "+ 0.5", row.AmountText)
}
