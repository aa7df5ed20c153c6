package entity

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const daiAddress = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

func TestParseTokenStandard(t *testing.T) {
	for in, want := range map[string]TokenStandard{
		"NONE":     TokenStandardNone,
		"native":   TokenStandardNone,
		"erc20":    TokenStandardERC20,
		"ERC721":   TokenStandardERC721,
		" erc1155": TokenStandardERC1155,
	} {
		got, err := ParseTokenStandard(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseTokenStandard("ERC777")
	require.ErrorIs(t, err, ErrInvalidStandard)
}

func TestNewAssetIdentifier_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		standard TokenStandard
		address  string
		tokenID  string
		wantErr  error
	}{
		{"native", TokenStandardNone, "", "", nil},
		{"native with address", TokenStandardNone, daiAddress, "", ErrInvalidAsset},
		{"native with token id", TokenStandardNone, "", "0x1", ErrInvalidAsset},
		{"erc20", TokenStandardERC20, daiAddress, "", nil},
		{"erc20 without address", TokenStandardERC20, "", "", ErrInvalidAsset},
		{"erc20 with token id", TokenStandardERC20, daiAddress, "0x1", ErrInvalidAsset},
		{"erc20 malformed address", TokenStandardERC20, "0x1234", "", ErrInvalidAsset},
		{"erc721", TokenStandardERC721, daiAddress, "0x1", nil},
		{"erc721 without token id", TokenStandardERC721, daiAddress, "", ErrInvalidAsset},
		{"erc1155 without address", TokenStandardERC1155, "", "0x1", ErrInvalidAsset},
		{"erc1155 bad token id", TokenStandardERC1155, daiAddress, "12", ErrInvalidAsset},
		{"unknown standard", TokenStandard("ERC777"), "", "", ErrInvalidStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := NewAssetIdentifier(tt.standard, tt.address, tt.tokenID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.standard, asset.Standard())

			_, hasAddr := AssetAddress(asset)
			_, hasID := AssetTokenID(asset)
			assert.Equal(t, tt.standard.HasAddress(), hasAddr)
			assert.Equal(t, tt.standard.HasTokenID(), hasID)
		})
	}
}

func TestNFTConstructors(t *testing.T) {
	addr := common.HexToAddress(daiAddress)

	_, err := NewERC721Asset(addr, nil)
	require.ErrorIs(t, err, ErrInvalidAsset)
	_, err = NewERC1155Asset(addr, big.NewInt(-1))
	require.ErrorIs(t, err, ErrInvalidAsset)

	id := big.NewInt(5)
	nft, err := NewERC721Asset(addr, id)
	require.NoError(t, err)
	id.SetInt64(6)
	assert.Equal(t, int64(5), nft.TokenID().Int64())

	var zero ERC1155Asset
	assert.Equal(t, int64(0), zero.TokenID().Int64())
}

func TestAssetIdentifier_JSON(t *testing.T) {
	nft, err := NewERC1155Asset(common.HexToAddress(daiAddress), big.NewInt(16))
	require.NoError(t, err)

	data, err := json.Marshal(nft)
	require.NoError(t, err)
	assert.JSONEq(t, `{"standard":"ERC1155","address":"`+daiAddress+`","tokenId":"0x10"}`, string(data))

	data, err = json.Marshal(NewNativeAsset())
	require.NoError(t, err)
	assert.JSONEq(t, `{"standard":"NONE"}`, string(data))

	decoded, err := UnmarshalAssetIdentifier([]byte(`{"standard":"erc20","address":"0x6b175474e89094c44da98b954eedeac495271d0f"}`))
	require.NoError(t, err)
	erc20, ok := decoded.(ERC20Asset)
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress(daiAddress), erc20.Address())
}

func TestUnmarshalAssetIdentifier_Rejects(t *testing.T) {
	for name, raw := range map[string]string{
		"not an object":       `"ERC20"`,
		"missing standard":    `{"address":"` + daiAddress + `"}`,
		"native with address": `{"standard":"NONE","address":"` + daiAddress + `"}`,
		"erc721 missing id":   `{"standard":"ERC721","address":"` + daiAddress + `"}`,
		"erc20 bad address":   `{"standard":"ERC20","address":"dai"}`,
		"erc20 with token id": `{"standard":"ERC20","address":"` + daiAddress + `","tokenId":"0x1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalAssetIdentifier([]byte(raw))
			require.Error(t, err)
		})
	}
}

func TestNewAssetInfo(t *testing.T) {
	network := NetworkDefinition{ChainID: 56, NativeSymbol: "BNB", NativeBadgeImage: "./images/bnb.svg"}

	info := NewAssetInfo(NewNativeAsset(), network)
	assert.True(t, info.IsNative)
	assert.Equal(t, "BNB", info.Symbol)
	assert.Equal(t, "./images/bnb.svg", info.Image)
	assert.Nil(t, info.Address)

	info = NewAssetInfo(NewNativeAsset(), NetworkDefinition{ChainID: 1})
	assert.Equal(t, DefaultNativeSymbol, info.Symbol)
	assert.Equal(t, DefaultNativeBadgeImage, info.Image)

	nft, err := NewERC721Asset(common.HexToAddress(daiAddress), big.NewInt(9))
	require.NoError(t, err)
	info = NewAssetInfo(nft, network)
	assert.False(t, info.IsNative)
	assert.Empty(t, info.Symbol)
	require.NotNil(t, info.Address)
	assert.Equal(t, common.HexToAddress(daiAddress), *info.Address)
	assert.Equal(t, int64(9), info.TokenID.Int64())
}
