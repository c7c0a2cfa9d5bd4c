// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/comtradectl/internal/config"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	_ = ctx

	// The arg[1] immediately following the binary (arg[0]) is the
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if
	// it appears to be a flag.
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		config.Config.Namespace = args[1]
	}

	app := &cli.Command{
		Name:  "comtradectl",
		Usage: "UN Comtrade preview API client",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "comtradectl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CacheCommandBuilder(),
		CommoditiesCommandBuilder(),
		PartnersCommandBuilder(),
		ReportersCommandBuilder(),
		TradeCommandBuilder(),
		VizCommandBuilder(),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
