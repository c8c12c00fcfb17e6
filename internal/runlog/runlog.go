// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package runlog persists attack and quality runs in a local SQLite database.
//
// Each run stores its parameters and outcome as JSON strings alongside a
// UUID and a creation timestamp. Callers record runs after the command has
// already produced its output, so a missing or broken database must never
// fail the command itself; that policy lives at the call site, the store
// reports errors normally.
package runlog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrRunNotFound is returned when no run matches the requested ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousID is returned when an ID prefix matches more than one run.
	ErrAmbiguousID = errors.New("ambiguous run id")
)

// =============================================================================
// RUN RECORD
// =============================================================================

// Run is a single recorded command run.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      Kind      `json:"kind"`
	Params    string    `json:"params"`  // JSON
	Outcome   string    `json:"outcome"` // JSON
}

// AttackParams describes the inputs of a recorded attack run.
type AttackParams struct {
	PlaintextFile  string `json:"plaintext_file"`
	CiphertextFile string `json:"ciphertext_file"`
	PlaintextMask  string `json:"plaintext_mask"`
	TargetSlot     int    `json:"target_slot"`
	VMask          string `json:"v_mask"`
	Pairs          int    `json:"pairs"`
	Workers        int    `json:"workers"`
}

// AttackOutcome summarizes the result of a recorded attack run.
type AttackOutcome struct {
	TopGuess    string  `json:"top_guess"`
	TopBias     float64 `json:"top_bias"`
	Probability float64 `json:"probability"`
}

// QualityParams describes the inputs of a recorded quality run.
type QualityParams struct {
	SBox  string `json:"sbox"`
	Trail string `json:"trail"`
}

// QualityOutcome holds the result of a recorded quality run.
type QualityOutcome struct {
	Quality float64 `json:"quality"`
}

// =============================================================================
// STORE
// =============================================================================

// Store is a handle to the run log database.
type Store struct {
	db *sql.DB
}

// Open opens the run log database at path, creating the file and its
// parent directory on first use.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize metadata: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// RECORD OPERATIONS
// =============================================================================

// Record stores a run and returns its generated ID. The params and outcome
// values are marshaled to JSON.
func (s *Store) Record(kind Kind, params, outcome any) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown run kind %q", kind)
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	outcomeJSON, err := json.Marshal(outcome)
	if err != nil {
		return "", fmt.Errorf("marshal outcome: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.Exec(
		"INSERT INTO runs (id, created_at, kind, params, outcome) VALUES (?, ?, ?, ?, ?)",
		id, createdAt, kind.String(), string(paramsJSON), string(outcomeJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

// =============================================================================
// QUERY OPERATIONS
// =============================================================================

// List returns all recorded runs, most recent first.
func (s *Store) List() ([]Run, error) {
	// created_at has second precision, so rowid breaks ties between
	// runs recorded within the same second
	rows, err := s.db.Query(
		"SELECT id, created_at, kind, params, outcome FROM runs ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Show returns the run with the given ID. A unique ID prefix is accepted,
// so the short IDs printed by the list view work directly.
func (s *Store) Show(id string) (*Run, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.Query(
		"SELECT id, created_at, kind, params, outcome FROM runs WHERE id LIKE ?",
		id+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		if run.ID == id {
			return &run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s matches %d runs", ErrAmbiguousID, id, len(matches))
	}
}

// Clear deletes all recorded runs and returns the number removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	return res.RowsAffected()
}

// scanRun reads one runs row via the given Scan function.
func scanRun(scan func(dest ...any) error) (Run, error) {
	var run Run
	var createdAt string
	if err := scan(&run.ID, &createdAt, &run.Kind, &run.Params, &run.Outcome); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts

	return run, nil
}
