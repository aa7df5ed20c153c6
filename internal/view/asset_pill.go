package view

import "simulation_preview/internal/domain/entity"

const (
	// TokenLabel is shown for every non-native asset.
	TokenLabel = "Token"
	// NativePillStyle is the inline padding override of the native pill.
	NativePillStyle = "padding: 0px 8px 0 4px"
	// NativeIconWidth is the rendered width of the native badge.
	NativeIconWidth = "18px"
)

// AssetPill returns the badge identifying an asset. The native asset gets a
// pill with its badge and symbol; any token gets a plain "Token" label.
func AssetPill(info entity.AssetInfo) Text {
	if info.IsNative {
		symbol := info.Symbol
		if symbol == "" {
			symbol = entity.DefaultNativeSymbol
		}
		image := info.Image
		if image == "" {
			image = entity.DefaultNativeBadgeImage
		}
		return Text{
			Variant:         TextVariantBodyMd,
			Display:         DisplayFlex,
			FlexDirection:   FlexDirectionRow,
			AlignItems:      AlignItemsCenter,
			BackgroundColor: BackgroundColorBackgroundAlternative,
			BorderRadius:    BorderRadiusPill,
			Gap:             1,
			Style:           NativePillStyle,
			Icon: &Image{
				Src:   image,
				Alt:   symbol + " logo",
				Width: NativeIconWidth,
			},
			Label: symbol,
		}
	}
	return Text{Variant: TextVariantBodyMd, Label: TokenLabel}
}
