// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

func PartnersCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("fetching partner reference table")

	api := NewAPI(cmd)
	return EmitReference(api.Partners(ctx, cmd.Bool("cache")), "partner countries", cmd)
}

func PartnersCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "partners",
		Usage:     "list partner countries",
		UsageText: `comtradectl partners [options]`,
		Flags:     NewGlobalFlags("partners"),
		Action:    PartnersCommandAction,
	}
}
