// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package store defines the optional trade-history persistence surface
// behind the --db flag.
package store

import (
	"context"

	"github.com/staranto/comtradectl/internal/comtrade"
)

// Store persists fetched trade records for later analysis.
type Store interface {
	// UpsertRecords writes records fetched for query, replacing earlier
	// rows with the same key.
	UpsertRecords(ctx context.Context, query comtrade.Query, records []comtrade.TradeRecord) error
	Close() error
}

// Nop is the Store used when no database is configured.
type Nop struct{}

func (Nop) UpsertRecords(context.Context, comtrade.Query, []comtrade.TradeRecord) error {
	return nil
}

func (Nop) Close() error { return nil }
