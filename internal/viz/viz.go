// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package viz aggregates trade records by partner and renders the top-N
// as a labeled horizontal bar chart.
package viz

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/staranto/comtradectl/internal/comtrade"
)

const (
	defaultChartWidth = 80
	minBarWidth       = 10
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f87d7"))
	axisStyle  = lipgloss.NewStyle().Faint(true)
)

// PartnerTotal is one aggregated bar: a partner and its summed trade
// value.
type PartnerTotal struct {
	Code  string
	Desc  string
	Value float64
}

// TopPartners groups records by partner code+description, sums the
// primary value per group, sorts descending and keeps the first topN.
// The sort is stable, so tied partners keep their first-encounter order.
func TopPartners(records []comtrade.TradeRecord, topN int) []PartnerTotal {
	type key struct{ code, desc string }

	index := map[key]int{}
	totals := make([]PartnerTotal, 0)
	for _, r := range records {
		k := key{r.PartnerCode, r.PartnerDesc}
		i, ok := index[k]
		if !ok {
			i = len(totals)
			index[k] = i
			totals = append(totals, PartnerTotal{Code: r.PartnerCode, Desc: r.PartnerDesc})
		}
		totals[i].Value += r.PrimaryValue
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Value > totals[j].Value
	})

	if topN > 0 && len(totals) > topN {
		totals = totals[:topN]
	}
	return totals
}

// FormatUSD renders a trade value in millions below one billion and in
// billions at or above it.
func FormatUSD(value float64) string {
	if value < 1e9 {
		return fmt.Sprintf("$%.1fM", value/1e6)
	}
	return fmt.Sprintf("$%.1fB", value/1e9)
}

// FormatPeriod renders an annual period verbatim and a monthly YYYYMM
// period as "January 2006". Anything unparsable falls back verbatim.
func FormatPeriod(period string) string {
	if len(period) != 6 {
		return period
	}
	parsed, err := time.Parse("200601", period)
	if err != nil {
		return period
	}
	return parsed.Format("January 2006")
}

// FlowDesc maps a flow code to its display name.
func FlowDesc(code string) string {
	switch code {
	case "M":
		return "Imports"
	case "X":
		return "Exports"
	default:
		return code
	}
}

// CommodityDesc picks the display name for the queried commodity: "All
// Commodities" for TOTAL, else the cmdDesc carried by the data when
// present.
func CommodityDesc(records []comtrade.TradeRecord, cmdCode string) string {
	if cmdCode == "" || cmdCode == "TOTAL" {
		return "All Commodities"
	}
	for _, r := range records {
		if r.CmdCode == cmdCode && r.CmdDesc != "" {
			return r.CmdDesc
		}
	}
	return "All Commodities"
}

// Options configures one visualization.
type Options struct {
	// ReporterName is the resolved reporter display name (raw code when
	// unresolved).
	ReporterName string
	FlowCode     string
	Period       string
	CmdCode      string
	TopN         int
	// Filename receives the chart when set; otherwise it goes to stdout.
	Filename string
	// Width overrides terminal-width detection (mainly for tests).
	Width int
}

// Visualize aggregates records, renders the bar chart to Options.Filename
// or stdout, and returns the aggregated top-N rows regardless of output
// mode.
func Visualize(records []comtrade.TradeRecord, opts Options) ([]PartnerTotal, error) {
	if len(records) == 0 {
		log.Info("no data to visualize")
		return []PartnerTotal{}, nil
	}

	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	tops := TopPartners(records, opts.TopN)

	title := fmt.Sprintf("Top %d Trading Partners: %s %s of %s (%s)",
		opts.TopN,
		opts.ReporterName,
		FlowDesc(opts.FlowCode),
		CommodityDesc(records, opts.CmdCode),
		FormatPeriod(opts.Period))

	chart := Chart(tops, title, chartWidth(opts))

	if opts.Filename != "" {
		if err := os.WriteFile(opts.Filename, []byte(chart+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write visualization: %w", err)
		}
		log.Infof("visualization saved to %s", opts.Filename)
	} else {
		fmt.Println(chart)
	}

	return tops, nil
}

func chartWidth(opts Options) int {
	if opts.Width > 0 {
		return opts.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultChartWidth
}

// Chart renders one bar per partner, each scaled against the largest
// total and annotated with its formatted value.
func Chart(tops []PartnerTotal, title string, width int) string {
	if len(tops) == 0 {
		return ""
	}

	maxVal := 0.0
	maxLabelLen := 0
	for _, p := range tops {
		if p.Value > maxVal {
			maxVal = p.Value
		}
		// Display width, not byte length: partner names carry multi-byte
		// runes (Türkiye, Côte d'Ivoire).
		if w := lipgloss.Width(label(p)); w > maxLabelLen {
			maxLabelLen = w
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Leave room for the label, the bar gutter and the annotation.
	barWidth := width - maxLabelLen - 12
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	var lines []string
	lines = append(lines, titleStyle.Render(title), "")
	for _, p := range tops {
		barLen := int((p.Value / maxVal) * float64(barWidth))
		if barLen < 1 {
			barLen = 1
		}
		bar := barStyle.Render(strings.Repeat("█", barLen))
		lines = append(lines, fmt.Sprintf("%s │%s %s",
			padLabel(label(p), maxLabelLen), bar, FormatUSD(p.Value)))
	}
	lines = append(lines, "", axisStyle.Render("Trade Value (USD)"))

	return strings.Join(lines, "\n")
}

func label(p PartnerTotal) string {
	if p.Desc != "" {
		return p.Desc
	}
	return p.Code
}

// padLabel right-aligns s in a field of the given display width.
func padLabel(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
