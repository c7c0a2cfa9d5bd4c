// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/comtradectl/internal/comtrade"
	"github.com/staranto/comtradectl/internal/viz"
)

func VizCommandAction(ctx context.Context, cmd *cli.Command) error {
	result, query, err := FetchTrade(ctx, cmd)
	if err != nil {
		return err
	}

	if err := PersistTrade(ctx, cmd, query, result); err != nil {
		return err
	}

	api := NewAPI(cmd)
	_, err = viz.Visualize(comtrade.Records(result), viz.Options{
		ReporterName: api.CountryName(ctx, query.ReporterCode, false),
		FlowCode:     query.FlowCode,
		Period:       query.Period,
		CmdCode:      query.CmdCode,
		TopN:         int(cmd.Int("top-n")),
		Filename:     cmd.String("image-file"),
	})
	return err
}

func VizCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "viz",
		Usage:     "chart top trading partners",
		UsageText: `comtradectl viz --reporter code --flow M|X --period YYYY[MM] [options]`,
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "top-n",
				Usage: "number of partners to chart",
				Value: 10,
			},
			&cli.StringFlag{
				Name:  "image-file",
				Usage: "write the chart to a file instead of stdout",
			},
		}, append(NewTradeFlags("viz"), NewGlobalFlags("viz")...)...),
		Action: VizCommandAction,
	}
}
