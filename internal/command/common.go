// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/comtradectl/internal/cache"
	"github.com/staranto/comtradectl/internal/comtrade"
	"github.com/staranto/comtradectl/internal/output"
	"github.com/staranto/comtradectl/internal/store"
	"github.com/staranto/comtradectl/internal/store/sqlite"
	"github.com/staranto/comtradectl/internal/table"
)

// Spit renders a table honoring the command's output flags.
func Spit(t *table.Table, cmd *cli.Command) error {
	return output.Spit(t, cmd, nil)
}

// NewAPI wires a Comtrade API handle from the command's connection and
// cache flags.
func NewAPI(cmd *cli.Command) *comtrade.API {
	client := comtrade.NewClient(comtrade.ClientOptions{
		BaseURL:  cmd.String("base-url"),
		Insecure: cmd.Bool("insecure"),
	})
	return comtrade.New(client, cache.New(cmd.String("cache-dir")))
}

// NewStore opens the trade-history store selected by --db, or a no-op
// store when the flag is unset.
func NewStore(cmd *cli.Command) (store.Store, error) {
	path := cmd.String("db")
	if path == "" {
		return store.Nop{}, nil
	}
	return sqlite.New(path)
}

// BuildQuery assembles a preview query from the trade flags.
func BuildQuery(cmd *cli.Command) comtrade.Query {
	return comtrade.Query{
		TypeCode:     cmd.String("type"),
		FreqCode:     cmd.String("freq"),
		ClCode:       cmd.String("classification"),
		ReporterCode: cmd.String("reporter"),
		FlowCode:     cmd.String("flow"),
		Period:       cmd.String("period"),
		CmdCode:      cmd.String("commodity"),
		PartnerCode:  cmd.String("partner"),
		MaxRecords:   int(cmd.Int("max-records")),
		IncludeDesc:  true,
		Tariffline:   cmd.Bool("tariffline"),
	}
}

// EmitReference funnels a reference lookup result to the output writer,
// translating the non-Found states into user-facing errors.
func EmitReference(result comtrade.Lookup, what string, cmd *cli.Command) error {
	switch result.State {
	case comtrade.StateFound:
		log.Debugf("retrieved %s %s rows", humanize.Comma(int64(result.Table.Len())), what)
		return Spit(result.Table, cmd)
	case comtrade.StateUpstreamError:
		if result.Status == 0 {
			return fmt.Errorf("could not retrieve %s: upstream unreachable", what)
		}
		return fmt.Errorf("could not retrieve %s: upstream status %d", what, result.Status)
	default:
		return fmt.Errorf("could not retrieve %s", what)
	}
}

// FetchTrade validates the required trade flags and runs the preview
// query. Validation happens before any client is constructed.
func FetchTrade(ctx context.Context, cmd *cli.Command) (*table.Table, comtrade.Query, error) {
	if err := RequiredFlagsValidator(cmd, "reporter", "flow", "period"); err != nil {
		return nil, comtrade.Query{}, err
	}

	api := NewAPI(cmd)
	query := BuildQuery(cmd)

	var (
		result *table.Table
		err    error
	)
	if query.Tariffline {
		result, err = api.PreviewTarifflineData(ctx, query, cmd.Bool("cache"))
	} else {
		result, err = api.PreviewFinalData(ctx, query, cmd.Bool("cache"))
	}
	if err != nil {
		return nil, query, err
	}

	if result.Len() == 0 {
		return nil, query, fmt.Errorf("no trade data found")
	}

	return result, query, nil
}

// PersistTrade records fetched rows in the history store when one is
// configured.
func PersistTrade(ctx context.Context, cmd *cli.Command, query comtrade.Query, result *table.Table) error {
	st, err := NewStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	records := comtrade.Records(result)
	if err := st.UpsertRecords(ctx, query, records); err != nil {
		return fmt.Errorf("failed to persist trade records: %w", err)
	}
	return nil
}
