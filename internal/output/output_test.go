// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	tbl "github.com/staranto/comtradectl/internal/table"
)

func testTable() *tbl.Table {
	return &tbl.Table{
		Columns: []string{"id", "text"},
		Rows: [][]string{
			{"4", "Afghanistan"},
			{"8", "Albania"},
		},
	}
}

// testCmd parses args through a throwaway command so flag values behave
// exactly as they do in the real CLI.
func testCmd(t *testing.T, args ...string) *cli.Command {
	t.Helper()

	var captured *cli.Command
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "output-file"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			captured = c
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return captured
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, ValidFormat(f))
	}
	assert.False(t, ValidFormat("xml"))
	assert.False(t, ValidFormat(""))
}

func TestSpitCSV(t *testing.T) {
	var buf bytes.Buffer

	err := Spit(testTable(), testCmd(t, "--output", "csv"), &buf)

	require.NoError(t, err)
	assert.Equal(t, "id,text\n4,Afghanistan\n8,Albania\n", buf.String())
}

func TestSpitJSON(t *testing.T) {
	var buf bytes.Buffer

	err := Spit(testTable(), testCmd(t, "--output", "json"), &buf)

	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"4","text":"Afghanistan"},{"id":"8","text":"Albania"}]`,
		buf.String())
}

func TestSpitYAML(t *testing.T) {
	var buf bytes.Buffer

	err := Spit(testTable(), testCmd(t, "--output", "yaml"), &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "id: \"4\"")
	assert.Contains(t, buf.String(), "text: Afghanistan")
}

func TestSpitText(t *testing.T) {
	var buf bytes.Buffer

	err := Spit(testTable(), testCmd(t, "--titles"), &buf)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Afghanistan")
	assert.Contains(t, out, "Albania")
	assert.Contains(t, out, "id")

	// Untitled output drops the header row.
	buf.Reset()
	err = Spit(testTable(), testCmd(t), &buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "id")
}

func TestSpitTextEmpty(t *testing.T) {
	var buf bytes.Buffer

	err := Spit(&tbl.Table{}, testCmd(t), &buf)

	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(buf.String()))
}

func TestSpitOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := Spit(testTable(), testCmd(t, "--output", "csv", "--output-file", path), nil)

	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,text\n4,Afghanistan\n8,Albania\n", string(body))
}
