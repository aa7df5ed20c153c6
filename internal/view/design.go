// Package view renders the simulation preview: the asset pill and the list
// of balance change rows. Nodes mirror the design-system Text primitive and
// are rendered to HTML with html/template.
package view

// Display is the CSS display mode of a box.
type Display string

// FlexDirection is the flex direction of a box.
type FlexDirection string

// AlignItems is the cross-axis alignment of a flex box.
type AlignItems string

// BackgroundColor is a design-system background color token.
type BackgroundColor string

// BorderRadius is a design-system radius token.
type BorderRadius string

// TextVariant is a design-system typography variant.
type TextVariant string

const (
	DisplayFlex Display = "flex"

	FlexDirectionRow FlexDirection = "row"

	AlignItemsCenter AlignItems = "center"

	BackgroundColorBackgroundAlternative BackgroundColor = "background-alternative"

	BorderRadiusPill BorderRadius = "pill"

	TextVariantBodyMd TextVariant = "body-md"
)
