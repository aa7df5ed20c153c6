package entity

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiatAmount_UnavailableIsNotZero(t *testing.T) {
	zero := NewFiatAmount(decimal.Zero)
	unavailable := FiatUnavailable()

	assert.False(t, zero.IsUnavailable())
	assert.True(t, unavailable.IsUnavailable())
	assert.False(t, zero.Equal(unavailable))
	assert.True(t, FiatAmount{}.Equal(unavailable))

	_, ok := unavailable.Value()
	assert.False(t, ok)
	v, ok := zero.Value()
	assert.True(t, ok)
	assert.True(t, v.IsZero())

	assert.Equal(t, "Fiat Unavailable", unavailable.String())
	assert.Equal(t, "0", zero.String())
}

func TestFiatAmount_JSON(t *testing.T) {
	data, err := json.Marshal(FiatUnavailable())
	require.NoError(t, err)
	assert.Equal(t, `"Fiat Unavailable"`, string(data))

	data, err = json.Marshal(NewFiatAmount(decimal.RequireFromString("-12.5")))
	require.NoError(t, err)
	assert.Equal(t, `"-12.5"`, string(data))

	tests := []struct {
		raw         string
		unavailable bool
		want        string
	}{
		{`"Fiat Unavailable"`, true, ""},
		{`"12.34"`, false, "12.34"},
		{`7`, false, "7"},
		{`"0"`, false, "0"},
	}
	for _, tt := range tests {
		var f FiatAmount
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &f), tt.raw)
		assert.Equal(t, tt.unavailable, f.IsUnavailable(), tt.raw)
		if !tt.unavailable {
			assert.Equal(t, tt.want, f.String())
		}
	}

	for _, raw := range []string{`null`, `"unavailable"`, `true`} {
		var f FiatAmount
		assert.ErrorIs(t, f.UnmarshalJSON([]byte(raw)), ErrInvalidFiatAmount, raw)
	}
}

func TestBalanceChange_JSON(t *testing.T) {
	amount, err := NewAmount(true, big.NewInt(100), 2)
	require.NoError(t, err)
	change := BalanceChange{
		Asset:      NewERC20Asset(common.HexToAddress(daiAddress)),
		Amount:     amount,
		FiatAmount: FiatUnavailable(),
	}

	data, err := json.Marshal(change)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"asset":{"standard":"ERC20","address":"`+daiAddress+`"},
		"amount":{"isNegative":true,"quantity":"0x64","decimals":2,"numeric":"-1"},
		"fiatAmount":"Fiat Unavailable"
	}`, string(data))

	_, err = json.Marshal(BalanceChange{Amount: amount})
	require.Error(t, err)
}

func TestBalanceChangeInput_Decode(t *testing.T) {
	var in BalanceChangeInput
	require.NoError(t, json.Unmarshal([]byte(`{"asset":{"standard":"NONE"},"amount":{"isNegative":false,"quantity":"0x1","decimals":18}}`), &in))
	assert.True(t, IsNativeAsset(in.Asset))
	assert.Nil(t, in.FiatAmount)

	supplied := NewFiatAmount(decimal.NewFromInt(3))
	assert.True(t, in.Resolve(supplied).FiatAmount.Equal(supplied))

	require.NoError(t, json.Unmarshal([]byte(`{"asset":{"standard":"NONE"},"amount":{"quantity":"0x1","decimals":18},"fiatAmount":"Fiat Unavailable"}`), &in))
	require.NotNil(t, in.FiatAmount)
	assert.True(t, in.Resolve(supplied).FiatAmount.IsUnavailable())

	var change BalanceChange
	require.NoError(t, json.Unmarshal([]byte(`{"asset":{"standard":"NONE"},"amount":{"quantity":"0x1","decimals":0}}`), &change))
	assert.True(t, change.FiatAmount.IsUnavailable())

	for name, raw := range map[string]string{
		"missing asset":  `{"amount":{"quantity":"0x1","decimals":0}}`,
		"null asset":     `{"asset":null,"amount":{"quantity":"0x1","decimals":0}}`,
		"missing amount": `{"asset":{"standard":"NONE"}}`,
		"bad asset":      `{"asset":{"standard":"ERC20"},"amount":{"quantity":"0x1","decimals":0}}`,
	} {
		t.Run(name, func(t *testing.T) {
			var in BalanceChangeInput
			require.Error(t, json.Unmarshal([]byte(raw), &in))
		})
	}
}
