// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package sqlite backs the trade-history store with an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/staranto/comtradectl/internal/comtrade"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertRecords writes one row per record, keyed on the full query shape
// plus partner and commodity so repeated fetches refresh values in place.
func (s *Store) UpsertRecords(ctx context.Context, query comtrade.Query, records []comtrade.TradeRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trade_records (
			type_code, freq_code, cl_code, reporter_code, partner_code,
			partner_desc, flow_code, period, cmd_code, cmd_desc,
			primary_value, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(type_code, freq_code, cl_code, reporter_code, partner_code, flow_code, period, cmd_code)
		DO UPDATE SET
			partner_desc = excluded.partner_desc,
			cmd_desc = excluded.cmd_desc,
			primary_value = excluded.primary_value,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range records {
		record := records[i]
		_, err = stmt.ExecContext(
			ctx,
			query.TypeCode,
			query.FreqCode,
			query.ClCode,
			query.ReporterCode,
			record.PartnerCode,
			record.PartnerDesc,
			record.FlowCode,
			record.Period,
			record.CmdCode,
			record.CmdDesc,
			record.PrimaryValue,
			now,
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

func (s *Store) migrate() error {
	statements := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS trade_records (
			type_code TEXT NOT NULL,
			freq_code TEXT NOT NULL,
			cl_code TEXT NOT NULL,
			reporter_code TEXT NOT NULL,
			partner_code TEXT NOT NULL,
			partner_desc TEXT,
			flow_code TEXT NOT NULL,
			period TEXT NOT NULL,
			cmd_code TEXT NOT NULL,
			cmd_desc TEXT,
			primary_value REAL NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (type_code, freq_code, cl_code, reporter_code, partner_code, flow_code, period, cmd_code)
		);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}
