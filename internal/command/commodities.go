// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

func CommoditiesCommandAction(ctx context.Context, cmd *cli.Command) error {
	classification := cmd.String("classification")
	log.Debugf("fetching commodity reference table for %s", classification)

	api := NewAPI(cmd)
	result := api.Commodities(ctx, classification, cmd.Bool("cache"))
	return EmitReference(result, fmt.Sprintf("%s commodity codes", classification), cmd)
}

func CommoditiesCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "commodities",
		Usage:     "list commodity codes for a classification",
		UsageText: `comtradectl commodities [options]`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "classification",
				Usage: "classification code",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("commodities.classification", altsrc.StringSourcer(cfg.Source)),
					yaml.YAML("classification", altsrc.StringSourcer(cfg.Source)),
				),
				Value: "HS",
			},
		}, NewGlobalFlags("commodities")...),
		Action: CommoditiesCommandAction,
	}
}
