package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Image is an inline image inside a Text node.
type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Width string `json:"width"`
}

// Text is a text/label node with box layout properties.
type Text struct {
	Variant         TextVariant     `json:"variant"`
	Display         Display         `json:"display,omitempty"`
	FlexDirection   FlexDirection   `json:"flexDirection,omitempty"`
	AlignItems      AlignItems      `json:"alignItems,omitempty"`
	BackgroundColor BackgroundColor `json:"backgroundColor,omitempty"`
	BorderRadius    BorderRadius    `json:"borderRadius,omitempty"`
	Gap             int             `json:"gap,omitempty"`
	Style           string          `json:"style,omitempty"`
	Icon            *Image          `json:"icon,omitempty"`
	Label           string          `json:"label"`
}

// ClassNames returns the design-system classes for t, in a fixed order.
func (t Text) ClassNames() []string {
	classes := []string{"mm-box", "mm-text"}
	if t.Variant != "" {
		classes = append(classes, "mm-text--"+string(t.Variant))
	}
	if t.Display != "" {
		classes = append(classes, "mm-box--display-"+string(t.Display))
	}
	if t.FlexDirection != "" {
		classes = append(classes, "mm-box--flex-direction-"+string(t.FlexDirection))
	}
	if t.AlignItems != "" {
		classes = append(classes, "mm-box--align-items-"+string(t.AlignItems))
	}
	if t.BackgroundColor != "" {
		classes = append(classes, "mm-box--background-color-"+string(t.BackgroundColor))
	}
	if t.BorderRadius != "" {
		classes = append(classes, "mm-box--rounded-"+string(t.BorderRadius))
	}
	if t.Gap > 0 {
		classes = append(classes, fmt.Sprintf("mm-box--gap-%d", t.Gap))
	}
	return classes
}

// HTML renders t as an HTML fragment.
func (t Text) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "text", t); err != nil {
		return "", fmt.Errorf("render text node: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func classAttr(t Text) string {
	return strings.Join(t.ClassNames(), " ")
}

// styleAttr passes inline style overrides through as trusted CSS; they only
// ever come from constants in this package.
func styleAttr(s string) template.CSS {
	return template.CSS(s)
}
