package sqlite

// Schema version for migration management
const SchemaVersion = 1

// ListsTableSQL creates the lists table. Timestamps are unix epoch seconds;
// deleted_at non-NULL marks a tombstone retained until remote deletion is
// confirmed.
const ListsTableSQL = `
CREATE TABLE IF NOT EXISTS lists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    remote_id TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER,
    deleted_at INTEGER,
    version TEXT NOT NULL
);
`

// ItemsTableSQL creates the items table. Every item belongs to exactly one
// list.
const ItemsTableSQL = `
CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    list_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    done INTEGER NOT NULL DEFAULT 0,
    remote_id TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER,
    deleted_at INTEGER,
    version TEXT NOT NULL,

    FOREIGN KEY(list_id) REFERENCES lists(id) ON DELETE CASCADE
);
`

// SchemaVersionTableSQL creates the schema version table for migration tracking
const SchemaVersionTableSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`

// IndexesSQL creates indexes for the lookups the engine and CLI perform
const IndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_items_list_id ON items(list_id);
CREATE INDEX IF NOT EXISTS idx_lists_remote_id ON lists(remote_id);
CREATE INDEX IF NOT EXISTS idx_items_remote_id ON items(remote_id);
CREATE INDEX IF NOT EXISTS idx_lists_deleted_at ON lists(deleted_at);
CREATE INDEX IF NOT EXISTS idx_items_deleted_at ON items(deleted_at);
`

// AllTableSchemas returns all table creation statements in order
func AllTableSchemas() []string {
	return []string{
		SchemaVersionTableSQL,
		ListsTableSQL,
		ItemsTableSQL,
	}
}

// PragmaStatements returns pragma statements to execute on database connection
func PragmaStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
}
