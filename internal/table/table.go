// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package table holds the ordered tabular model that reference and trade
// datasets are normalized into. Row order always matches the upstream
// response order; column order is first-encounter order.
package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	yaml "gopkg.in/yaml.v2"
)

type Table struct {
	Columns []string
	Rows    [][]string
}

// FromJSONArray builds a Table from a JSON array of flat objects. Columns
// are discovered in document order across all rows; missing cells are
// empty strings. Nested values are kept as their raw JSON text.
func FromJSONArray(data []byte) (*Table, error) {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("table: expected a JSON array, got %s", parsed.Type)
	}

	t := &Table{}
	colIndex := map[string]int{}

	parsed.ForEach(func(_, row gjson.Result) bool {
		if !row.IsObject() {
			return true
		}
		cells := map[int]string{}
		row.ForEach(func(key, value gjson.Result) bool {
			idx, ok := colIndex[key.String()]
			if !ok {
				idx = len(t.Columns)
				colIndex[key.String()] = idx
				t.Columns = append(t.Columns, key.String())
			}
			cells[idx] = value.String()
			return true
		})

		r := make([]string, len(t.Columns))
		for idx, v := range cells {
			r[idx] = v
		}
		t.Rows = append(t.Rows, r)
		return true
	})

	// Earlier rows may be shorter than the final column set.
	for i, r := range t.Rows {
		if len(r) < len(t.Columns) {
			padded := make([]string, len(t.Columns))
			copy(padded, r)
			t.Rows[i] = padded
		}
	}

	return t, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Lookup returns the outCol value of the first row whose idCol cell equals
// id. Used for code-to-name resolution against reference tables.
func (t *Table) Lookup(idCol, id, outCol string) (string, bool) {
	if t == nil {
		return "", false
	}
	idIdx, outIdx := -1, -1
	for i, c := range t.Columns {
		switch c {
		case idCol:
			idIdx = i
		case outCol:
			outIdx = i
		}
	}
	if idIdx < 0 || outIdx < 0 {
		return "", false
	}
	for _, r := range t.Rows {
		if r[idIdx] == id {
			return r[outIdx], true
		}
	}
	return "", false
}

// EncodeCSV renders the table as delimited text, header first.
func (t *Table) EncodeCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("table: failed to write csv header: %w", err)
	}
	for _, r := range t.Rows {
		if err := w.Write(r); err != nil {
			return nil, fmt.Errorf("table: failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("table: csv flush failed: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV rebuilds a Table from EncodeCSV output.
func DecodeCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// EncodeJSON renders the table as a JSON array of records, preserving
// column order within each record.
func (t *Table) EncodeJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, c := range t.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(c)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(r[j])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// EncodeYAML renders the table as a YAML sequence of mappings. yaml.v2
// MapSlice keeps the column order.
func (t *Table) EncodeYAML() ([]byte, error) {
	docs := make([]yaml.MapSlice, 0, len(t.Rows))
	for _, r := range t.Rows {
		m := make(yaml.MapSlice, 0, len(t.Columns))
		for j, c := range t.Columns {
			m = append(m, yaml.MapItem{Key: c, Value: r[j]})
		}
		docs = append(docs, m)
	}
	out, err := yaml.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("table: yaml marshal failed: %w", err)
	}
	return out, nil
}
