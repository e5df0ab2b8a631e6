package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1Divinations,
}

// migrationV1Divinations creates the divination history table.
//
// The three cast numbers are stored as a JSON array rather than three
// columns; they are only ever read back as a unit.
const migrationV1Divinations = `
-- Migration 001: divination history

CREATE TABLE IF NOT EXISTS divinations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- What was asked. May be empty for pure calendar lookups saved by hand.
    question TEXT NOT NULL DEFAULT '',

    -- The three cast numbers as a JSON array, e.g. '[3,5,2]'
    numbers TEXT NOT NULL,

    -- Derived results, stored denormalized as rendered strings
    hexagram TEXT NOT NULL,
    bazi TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- History is listed newest first
CREATE INDEX IF NOT EXISTS idx_divinations_created
    ON divinations(created_at DESC);
`
