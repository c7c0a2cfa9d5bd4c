// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comtrade

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/comtradectl/internal/table"
)

// MaxPreviewRecords is the hard ceiling the preview endpoints enforce
// upstream. It is not validated locally.
const MaxPreviewRecords = 500

// Query identifies one preview request. The zero values of TypeCode,
// FreqCode, ClCode, CmdCode, MaxRecords and IncludeDesc are filled with
// the upstream defaults (C, A, HS, TOTAL, 500, true).
type Query struct {
	TypeCode     string
	FreqCode     string
	ClCode       string
	ReporterCode string
	FlowCode     string
	Period       string
	CmdCode      string
	// PartnerCode narrows tariffline previews; the final-data endpoint
	// ignores it.
	PartnerCode string
	MaxRecords  int
	IncludeDesc bool
	Tariffline  bool
}

func (q Query) withDefaults() Query {
	if q.TypeCode == "" {
		q.TypeCode = "C"
	}
	if q.FreqCode == "" {
		q.FreqCode = "A"
	}
	if q.ClCode == "" {
		q.ClCode = "HS"
	}
	if q.CmdCode == "" {
		q.CmdCode = "TOTAL"
	}
	if q.MaxRecords <= 0 {
		q.MaxRecords = MaxPreviewRecords
	}
	return q
}

// CacheKey derives the deterministic cache filename from the fixed
// parameter order: type, frequency, classification, reporter, flow,
// period, commodity. Distinct queries therefore map to distinct files.
func (q Query) CacheKey() string {
	q = q.withDefaults()
	prefix := "preview"
	suffix := ""
	if q.Tariffline {
		prefix = "previewTariffline"
		if q.PartnerCode != "" {
			suffix = "_" + q.PartnerCode
		}
	}
	return fmt.Sprintf("%s_%s_%s_%s_%s_%s_%s_%s%s.csv",
		prefix, q.TypeCode, q.FreqCode, q.ClCode,
		q.ReporterCode, q.FlowCode, q.Period, q.CmdCode, suffix)
}

func (q Query) url(base string) string {
	q = q.withDefaults()

	path := "/public/v1/preview/"
	if q.Tariffline {
		path = "/public/v1/previewTariffline/"
	}

	params := url.Values{}
	params.Set("reportercode", q.ReporterCode)
	params.Set("flowCode", q.FlowCode)
	params.Set("period", q.Period)
	params.Set("cmdCode", q.CmdCode)
	params.Set("maxRecords", strconv.Itoa(q.MaxRecords))
	params.Set("includeDesc", capitalizedBool(q.IncludeDesc))
	if q.Tariffline && q.PartnerCode != "" {
		params.Set("partnerCode", q.PartnerCode)
	}

	return base + path +
		url.PathEscape(q.TypeCode) + "/" +
		url.PathEscape(q.FreqCode) + "/" +
		url.PathEscape(q.ClCode) + "?" + params.Encode()
}

// capitalizedBool renders includeDesc the way the upstream expects it
// (True/False rather than true/false).
func capitalizedBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// TradeRecord is one normalized trade-flow row.
type TradeRecord struct {
	ReporterCode string
	PartnerCode  string
	PartnerDesc  string
	FlowCode     string
	Period       string
	CmdCode      string
	CmdDesc      string
	PrimaryValue float64
}

// PreviewFinalData fetches a final-data preview. HTTP-level failures and
// data:null responses yield an EMPTY table and a nil error (logged, never
// raised); only malformed 200 bodies and cache encode failures surface as
// errors. Successful responses are written through to the cache under
// Query.CacheKey().
func (api *API) PreviewFinalData(ctx context.Context, q Query, useCache bool) (*table.Table, error) {
	q.Tariffline = false
	return api.preview(ctx, q, useCache)
}

// PreviewTarifflineData fetches a tariffline preview, optionally narrowed
// to a single partner. Same contract as PreviewFinalData.
func (api *API) PreviewTarifflineData(ctx context.Context, q Query, useCache bool) (*table.Table, error) {
	q.Tariffline = true
	return api.preview(ctx, q, useCache)
}

func (api *API) preview(ctx context.Context, q Query, useCache bool) (*table.Table, error) {
	q = q.withDefaults()

	key := q.CacheKey()
	if useCache {
		if data, ok := api.store.Read(key); ok {
			if t, err := table.DecodeCSV(data); err == nil {
				log.Debugf("cache hit: %s", key)
				return t, nil
			}
			log.Warnf("discarding unreadable cache entry %s", key)
		}
	}

	status, body, err := api.client.Get(ctx, q.url(api.client.BaseURL()))
	if err != nil {
		log.Warnf("preview request failed: %v", err)
		return &table.Table{}, nil
	}
	if status != http.StatusOK {
		log.Errorf("preview error %d: %s", status, strings.TrimSpace(string(body)))
		return &table.Table{}, nil
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("preview: malformed response body")
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		log.Info("no data found in response")
		return &table.Table{}, nil
	}

	t, err := table.FromJSONArray([]byte(data.Raw))
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}

	if t.Len() > 0 {
		api.cacheTable(key, t)
	}
	return t, nil
}

// Records projects the named trade columns out of a preview table.
// Unknown or missing columns project to zero values so partial upstream
// payloads still visualize.
func Records(t *table.Table) []TradeRecord {
	if t == nil || len(t.Rows) == 0 {
		return []TradeRecord{}
	}

	idx := map[string]int{}
	for i, c := range t.Columns {
		idx[c] = i
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]TradeRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		value, _ := strconv.ParseFloat(cell(row, "primaryValue"), 64)
		records = append(records, TradeRecord{
			ReporterCode: cell(row, "reporterCode"),
			PartnerCode:  cell(row, "partnerCode"),
			PartnerDesc:  cell(row, "partnerDesc"),
			FlowCode:     cell(row, "flowCode"),
			Period:       cell(row, "period"),
			CmdCode:      cell(row, "cmdCode"),
			CmdDesc:      cell(row, "cmdDesc"),
			PrimaryValue: value,
		})
	}
	return records
}
