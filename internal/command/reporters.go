// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

func ReportersCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("fetching reporter reference table")

	api := NewAPI(cmd)
	return EmitReference(api.Reporters(ctx, cmd.Bool("cache")), "reporter countries", cmd)
}

func ReportersCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "reporters",
		Usage:     "list reporter countries",
		UsageText: `comtradectl reporters [options]`,
		Flags:     NewGlobalFlags("reporters"),
		Action:    ReportersCommandAction,
	}
}
