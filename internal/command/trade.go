// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

func TradeCommandAction(ctx context.Context, cmd *cli.Command) error {
	result, query, err := FetchTrade(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("retrieved %s trade rows for %s/%s/%s",
		humanize.Comma(int64(result.Len())),
		query.ReporterCode, query.FlowCode, query.Period)

	if err := PersistTrade(ctx, cmd, query, result); err != nil {
		return err
	}

	return Spit(result, cmd)
}

func TradeCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "trade",
		Usage:     "fetch trade flow records",
		UsageText: `comtradectl trade --reporter code --flow M|X --period YYYY[MM] [options]`,
		Flags:     append(NewTradeFlags("trade"), NewGlobalFlags("trade")...),
		Action:    TradeCommandAction,
	}
}
