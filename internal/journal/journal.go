// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

// Package journal keeps a local record of every submission outcome.
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id            TEXT PRIMARY KEY,
	created_at    INTEGER NOT NULL,
	tx_hash       TEXT NOT NULL DEFAULT '',
	contract_id   TEXT NOT NULL,
	function_name TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	detail        TEXT NOT NULL DEFAULT '',
	fee_charged   INTEGER NOT NULL DEFAULT 0,
	ledger        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS submissions_created_at ON submissions (created_at);
`

// Entry is one journaled submission. Outcome is "success" or the error kind.
type Entry struct {
	ID         string
	CreatedAt  time.Time
	Hash       string
	ContractID string
	Function   string
	Outcome    string
	Detail     string
	FeeCharged int64
	Ledger     uint32
}

type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the database file and its directory if needed.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating journal directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening journal")
	}
	// One connection keeps sqlite writes ordered.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating journal schema")
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Record stores e, filling in the id and timestamp when unset.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = j.now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO submissions (id, created_at, tx_hash, contract_id, function_name, outcome, detail, fee_charged, ledger)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UnixMilli(), e.Hash, e.ContractID, e.Function, e.Outcome, e.Detail, e.FeeCharged, int64(e.Ledger),
	)
	if err != nil {
		return Entry{}, errors.Wrap(err, "recording submission")
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, errors.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, created_at, tx_hash, contract_id, function_name, outcome, detail, fee_charged, ledger
		 FROM submissions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying journal")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			createdAt int64
			ledger    int64
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Hash, &e.ContractID, &e.Function, &e.Outcome, &e.Detail, &e.FeeCharged, &ledger); err != nil {
			return nil, errors.Wrap(err, "reading journal row")
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		e.Ledger = uint32(ledger)
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "reading journal")
}

func (j *Journal) Close() error {
	return j.db.Close()
}
