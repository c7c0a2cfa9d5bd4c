// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/comtradectl/internal/cache"
)

func CacheCommandAction(_ context.Context, cmd *cli.Command) error {
	store := cache.New(cmd.String("cache-dir"))

	if name := cmd.String("invalidate"); name != "" {
		if err := store.Invalidate(name); err != nil {
			return fmt.Errorf("failed to invalidate %s: %w", name, err)
		}
		log.Infof("invalidated %s", name)
		return nil
	}

	if cmd.Bool("clear") {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		log.Infof("cleared %s", cmd.String("cache-dir"))
		return nil
	}

	return fmt.Errorf("nothing to do: pass --clear or --invalidate")
}

func CacheCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "cache",
		Usage:     "manage the response cache",
		UsageText: `comtradectl cache --clear | --invalidate name [options]`,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "remove every cached response",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:  "invalidate",
				Usage: "remove a single cached response by filename",
			},
		}, NewGlobalFlags("cache")...),
		Action: CacheCommandAction,
	}
}
