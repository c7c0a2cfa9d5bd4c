// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/comtradectl/internal/comtrade"
)

func rec(partner, desc string, value float64) comtrade.TradeRecord {
	return comtrade.TradeRecord{
		PartnerCode:  partner,
		PartnerDesc:  desc,
		FlowCode:     "M",
		PrimaryValue: value,
	}
}

func TestTopPartners(t *testing.T) {
	records := []comtrade.TradeRecord{
		rec("276", "Germany", 100),
		rec("392", "Japan", 50),
		rec("276", "Germany", 25),
		rec("156", "China", 200),
	}

	tops := TopPartners(records, 2)

	require.Len(t, tops, 2)
	assert.Equal(t, "China", tops[0].Desc)
	assert.Equal(t, 200.0, tops[0].Value)
	assert.Equal(t, "Germany", tops[1].Desc)
	assert.Equal(t, 125.0, tops[1].Value)
}

func TestTopPartnersFewerThanN(t *testing.T) {
	tops := TopPartners([]comtrade.TradeRecord{rec("392", "Japan", 1)}, 10)
	require.Len(t, tops, 1)
	assert.Equal(t, "392", tops[0].Code)
}

func TestTopPartnersTiesKeepFirstEncounterOrder(t *testing.T) {
	records := []comtrade.TradeRecord{
		rec("392", "Japan", 100),
		rec("276", "Germany", 100),
	}

	tops := TopPartners(records, 10)

	require.Len(t, tops, 2)
	assert.Equal(t, "Japan", tops[0].Desc)
	assert.Equal(t, "Germany", tops[1].Desc)
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{500000, "$0.5M"},
		{1500000, "$1.5M"},
		{999999999, "$1000.0M"},
		{2500000000, "$2.5B"},
		{1e9, "$1.0B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(tt.value))
	}
}

func TestFormatPeriod(t *testing.T) {
	tests := []struct {
		period string
		want   string
	}{
		{"2022", "2022"},
		{"202212", "December 2022"},
		{"202201", "January 2022"},
		{"abc123", "abc123"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPeriod(tt.period))
	}
}

func TestFlowDesc(t *testing.T) {
	assert.Equal(t, "Imports", FlowDesc("M"))
	assert.Equal(t, "Exports", FlowDesc("X"))
	assert.Equal(t, "RX", FlowDesc("RX"))
}

func TestCommodityDesc(t *testing.T) {
	records := []comtrade.TradeRecord{
		{CmdCode: "85", CmdDesc: "Electrical machinery"},
	}

	assert.Equal(t, "All Commodities", CommodityDesc(records, "TOTAL"))
	assert.Equal(t, "All Commodities", CommodityDesc(records, ""))
	assert.Equal(t, "Electrical machinery", CommodityDesc(records, "85"))
	assert.Equal(t, "All Commodities", CommodityDesc(records, "27"))
}

func TestChart(t *testing.T) {
	tops := []PartnerTotal{
		{Code: "156", Desc: "China", Value: 2e9},
		{Code: "392", Desc: "Japan", Value: 5e8},
	}

	chart := Chart(tops, "Top 2 Trading Partners", 80)

	assert.Contains(t, chart, "Top 2 Trading Partners")
	assert.Contains(t, chart, "China")
	assert.Contains(t, chart, "Japan")
	assert.Contains(t, chart, "$2.0B")
	assert.Contains(t, chart, "$500.0M")
	assert.Contains(t, chart, "█")
	assert.Contains(t, chart, "Trade Value (USD)")

	// The largest value owns the longest bar.
	var chinaBars, japanBars int
	for _, line := range strings.Split(chart, "\n") {
		n := strings.Count(line, "█")
		switch {
		case strings.Contains(line, "China"):
			chinaBars = n
		case strings.Contains(line, "Japan"):
			japanBars = n
		}
	}
	assert.Greater(t, chinaBars, japanBars)
}

func TestChartAlignsMultiByteLabels(t *testing.T) {
	tops := []PartnerTotal{
		{Code: "792", Desc: "Türkiye", Value: 3e8},
		{Code: "384", Desc: "Côte d'Ivoire", Value: 2e8},
		{Code: "392", Desc: "Japan", Value: 1e8},
	}

	chart := Chart(tops, "title", 80)

	// Every bar gutter sits in the same display column regardless of
	// multi-byte runes in the labels.
	gutter := -1
	for _, line := range strings.Split(chart, "\n") {
		if !strings.Contains(line, "│") {
			continue
		}
		col := 0
		for _, r := range line {
			if r == '│' {
				break
			}
			col++
		}
		if gutter == -1 {
			gutter = col
		}
		assert.Equal(t, gutter, col, "misaligned gutter in %q", line)
	}
	assert.NotEqual(t, -1, gutter)
}

func TestChartEmpty(t *testing.T) {
	assert.Equal(t, "", Chart(nil, "title", 80))
}

func TestVisualizeToFile(t *testing.T) {
	records := []comtrade.TradeRecord{
		rec("156", "China", 2e9),
		rec("392", "Japan", 5e8),
	}
	out := filepath.Join(t.TempDir(), "chart.txt")

	tops, err := Visualize(records, Options{
		ReporterName: "USA",
		FlowCode:     "M",
		Period:       "202212",
		TopN:         10,
		Filename:     out,
		Width:        100,
	})

	require.NoError(t, err)
	require.Len(t, tops, 2)

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(body),
		"Top 10 Trading Partners: USA Imports of All Commodities (December 2022)")
	assert.Contains(t, string(body), "China")
}

func TestVisualizeEmpty(t *testing.T) {
	tops, err := Visualize(nil, Options{ReporterName: "USA"})
	require.NoError(t, err)
	assert.Empty(t, tops)
}
