// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package runlog

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the run log
const Schema = `
-- Metadata table for schema version and log state
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Runs table: one row per recorded command run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,      -- UUID
    created_at TEXT NOT NULL, -- RFC 3339, UTC
    kind TEXT NOT NULL,       -- attack, quality
    params TEXT NOT NULL,     -- JSON command parameters
    outcome TEXT NOT NULL     -- JSON result summary
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`

// =============================================================================
// RUN KINDS
// =============================================================================

// Kind identifies the command that produced a run record
type Kind string

const (
	KindAttack  Kind = "attack"
	KindQuality Kind = "quality"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known value
func (k Kind) IsValid() bool {
	switch k {
	case KindAttack, KindQuality:
		return true
	}
	return false
}
