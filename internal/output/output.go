// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output renders result tables in the formats selected by the
// --output flag.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/comtradectl/internal/config"
	tbl "github.com/staranto/comtradectl/internal/table"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "csv", "yaml"}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Spit renders t according to the command's --output flag, writing to
// --output-file when set and to w (or stdout) otherwise.
func Spit(t *tbl.Table, cmd *cli.Command, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if path := cmd.String("output-file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	log.Debugf("emitting %s rows as %s", humanize.Comma(int64(t.Len())), cmd.String("output"))

	switch cmd.String("output") {
	case "json":
		out, err := t.EncodeJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "csv":
		out, err := t.EncodeCSV()
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "yaml":
		out, err := t.EncodeYAML()
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return textWriter(t, cmd, w)
	}
}

// textWriter renders the table in tabular form honoring color, titles
// and padding options.
func textWriter(t *tbl.Table, cmd *cli.Command, w io.Writer) error {
	if t.Len() == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	lt := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			pad, _ := config.GetInt("padding", 1)

			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Rows(t.Rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		lt = lt.Headers(t.Columns...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, lt)
	return err
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
