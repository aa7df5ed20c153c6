package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"simulation_preview/internal/domain/entity"
	"simulation_preview/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	// FiatUnavailableText is shown instead of a fiat value that could not be computed.
	FiatUnavailableText = "Not Available"

	outgoingHeading = "You send"
	incomingHeading = "You receive"
)

// ListOptions tunes how amounts are displayed. The zero value shows
// utils.DefaultDisplayDecimals fractional digits.
type ListOptions struct {
	MaxDisplayDecimals int32
}

// Row is one balance change as displayed.
type Row struct {
	Pill          Text   `json:"pill"`
	AmountText    string `json:"amountText"`
	FiatText      string `json:"fiatText"`
	FiatAvailable bool   `json:"fiatAvailable"`
	IsNegative    bool   `json:"isNegative"`
}

// Section groups rows under a heading.
type Section struct {
	Heading string `json:"heading"`
	Rows    []Row  `json:"rows"`
}

// BalanceChangeList is the displayed preview: outgoing changes first, then
// incoming ones, each group keeping the input order.
type BalanceChangeList struct {
	ChainID            uint64  `json:"chainId"`
	Outgoing           Section `json:"outgoing"`
	Incoming           Section `json:"incoming"`
	TotalFiatText      string  `json:"totalFiatText"`
	TotalFiatAvailable bool    `json:"totalFiatAvailable"`
}

// Empty reports whether the list has no rows.
func (l BalanceChangeList) Empty() bool {
	return len(l.Outgoing.Rows) == 0 && len(l.Incoming.Rows) == 0
}

// Rows returns all rows in display order.
func (l BalanceChangeList) Rows() []Row {
	rows := make([]Row, 0, len(l.Outgoing.Rows)+len(l.Incoming.Rows))
	rows = append(rows, l.Outgoing.Rows...)
	return append(rows, l.Incoming.Rows...)
}

// BuildRow formats a single change.
func BuildRow(change entity.BalanceChange, info entity.AssetInfo, opts ListOptions) Row {
	row := Row{
		Pill:       AssetPill(info),
		AmountText: utils.FormatSignedAmount(change.Amount.Numeric(), change.Amount.IsNegative(), opts.MaxDisplayDecimals),
		IsNegative: change.Amount.IsNegative(),
		FiatText:   FiatUnavailableText,
	}
	if v, ok := change.FiatAmount.Value(); ok {
		row.FiatText = utils.FormatFiatUSD(v)
		row.FiatAvailable = true
	}
	return row
}

// BuildBalanceChangeList formats changes seen on network.
func BuildBalanceChangeList(network entity.NetworkDefinition, changes []entity.BalanceChange, opts ListOptions) BalanceChangeList {
	list := BalanceChangeList{
		ChainID:  network.ChainID,
		Outgoing: Section{Heading: outgoingHeading},
		Incoming: Section{Heading: incomingHeading},
	}

	total := decimal.Zero
	for _, change := range changes {
		row := BuildRow(change, entity.NewAssetInfo(change.Asset, network), opts)
		if row.IsNegative {
			list.Outgoing.Rows = append(list.Outgoing.Rows, row)
		} else {
			list.Incoming.Rows = append(list.Incoming.Rows, row)
		}
		if v, ok := change.FiatAmount.Value(); ok {
			total = total.Add(v)
			list.TotalFiatAvailable = true
		}
	}

	list.TotalFiatText = FiatUnavailableText
	if list.TotalFiatAvailable {
		list.TotalFiatText = utils.FormatFiatUSD(total)
	}
	return list
}

// HTML renders the list as an HTML fragment.
func (l BalanceChangeList) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "preview", l); err != nil {
		return "", fmt.Errorf("render balance change list: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Text renders the list for a terminal.
func (l BalanceChangeList) Text() string {
	var b strings.Builder
	for _, section := range []Section{l.Outgoing, l.Incoming} {
		if len(section.Rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", section.Heading)
		for _, row := range section.Rows {
			fmt.Fprintf(&b, "  %-20s %-8s %s\n", row.AmountText, row.Pill.Label, row.FiatText)
		}
	}
	if l.Empty() {
		b.WriteString("No changes predicted\n")
	}
	fmt.Fprintf(&b, "Total: %s\n", l.TotalFiatText)
	return b.String()
}
