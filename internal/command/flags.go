// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/comtradectl/internal/comtrade"
	"github.com/staranto/comtradectl/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var cfg config.Type

// DefaultCacheDir matches the upstream tooling's conventional location.
const DefaultCacheDir = "comtrade_cache"

// NewGlobalFlags builds the per-command flag set. params[0] is the
// subcommand name, used to namespace config file lookups.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:  "output-file",
			Usage: "write results to a file instead of stdout",
		},
		&cli.BoolWithInverseFlag{
			Name:  "cache",
			Usage: "read previously cached responses",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"cache", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache", altsrc.StringSourcer(cfg.Source)),
			),
			Value: true,
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "directory for cached responses",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("COMTRADECTL_CACHE_DIR"),
				yaml.YAML(params[0]+"."+"cache-dir", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache-dir", altsrc.StringSourcer(cfg.Source)),
			),
			Value: DefaultCacheDir,
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Comtrade API base URL",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("COMTRADECTL_BASE_URL"),
				yaml.YAML("base-url", altsrc.StringSourcer(cfg.Source)),
			),
			Value: comtrade.DefaultBaseURL,
		},
		&cli.BoolFlag{
			Name:        "insecure",
			Usage:       "skip TLS certificate verification",
			HideDefault: true,
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewTradeFlags builds the query flags shared by the trade and viz
// subcommands.
func NewTradeFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "reporter",
			Aliases: []string{"r"},
			Usage:   "reporter country code",
		},
		&cli.StringFlag{
			Name:    "flow",
			Aliases: []string{"f"},
			Usage:   "flow code (M=Import, X=Export)",
			Validator: func(value string) error {
				return FlagValidators(value, FlowValidator)
			},
		},
		&cli.StringFlag{
			Name:    "period",
			Aliases: []string{"p"},
			Usage:   "period (YYYY for annual, YYYYMM for monthly)",
		},
		&cli.StringFlag{
			Name:  "commodity",
			Usage: "commodity code",
			Value: "TOTAL",
		},
		&cli.StringFlag{
			Name:  "classification",
			Usage: "classification code",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"classification", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("classification", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "HS",
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "trade type (C=commodities, S=services)",
			Value: "C",
		},
		&cli.StringFlag{
			Name:  "freq",
			Usage: "frequency (A=annual, M=monthly)",
			Value: "A",
		},
		&cli.IntFlag{
			Name:  "max-records",
			Usage: "maximum records returned by the preview endpoint",
			Value: comtrade.MaxPreviewRecords,
		},
		&cli.StringFlag{
			Name:  "partner",
			Usage: "partner country code (tariffline only)",
		},
		&cli.BoolFlag{
			Name:        "tariffline",
			Usage:       "query the tariffline preview endpoint",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "SQLite file to record fetched trade data in",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"db", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("db", altsrc.StringSourcer(cfg.Source)),
			),
		},
	}
}
