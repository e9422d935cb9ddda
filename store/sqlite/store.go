// Package sqlite provides the SQLite-backed local store for lists and items.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"listsync/store"

	_ "modernc.org/sqlite" // SQLite driver
)

// StoreError represents errors from local store operations
type StoreError struct {
	Op     string // Operation that failed
	Err    error  // Underlying error
	ListID int64  // Optional: list ID if relevant
	ItemID int64  // Optional: item ID if relevant
}

func (e *StoreError) Error() string {
	switch {
	case e.ItemID != 0:
		return fmt.Sprintf("sqlite %s failed for item %d: %v", e.Op, e.ItemID, e.Err)
	case e.ListID != 0:
		return fmt.Sprintf("sqlite %s failed for list %d: %v", e.Op, e.ListID, e.Err)
	default:
		return fmt.Sprintf("sqlite %s failed: %v", e.Op, e.Err)
	}
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store is the SQLite-backed local persistence layer
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies the schema
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	for _, pragma := range PragmaStatements() {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, &StoreError{Op: "pragma", Err: err}
		}
	}

	for _, stmt := range AllTableSchemas() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, &StoreError{Op: "migrate", Err: err}
		}
	}
	if _, err := db.Exec(IndexesSQL); err != nil {
		db.Close()
		return nil, &StoreError{Op: "index", Err: err}
	}
	if _, err := db.Exec(
		`INSERT OR IGNORE INTO schema_version (version, applied_at) VALUES (?, ?)`,
		SchemaVersion, time.Now().Unix(),
	); err != nil {
		db.Close()
		return nil, &StoreError{Op: "migrate", Err: err}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadLists returns every list with its items, tombstones included. The
// engine needs the full snapshot: tombstones drive remote deletion and must
// keep participating in match indexes.
func (s *Store) LoadLists(ctx context.Context) ([]*store.List, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, remote_id, created_at, updated_at, deleted_at, version
		FROM lists ORDER BY id`)
	if err != nil {
		return nil, &StoreError{Op: "load lists", Err: err}
	}
	defer rows.Close()

	var lists []*store.List
	byID := make(map[int64]*store.List)
	for rows.Next() {
		l := &store.List{}
		var remoteID sql.NullString
		var updatedAt, deletedAt sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&l.ID, &l.Name, &remoteID, &createdAt, &updatedAt, &deletedAt, &l.Version); err != nil {
			return nil, &StoreError{Op: "scan list", Err: err}
		}
		l.RemoteID = remoteID.String
		l.CreatedAt = time.Unix(createdAt, 0).UTC()
		l.UpdatedAt = nullEpoch(updatedAt)
		l.DeletedAt = nullEpochPtr(deletedAt)
		lists = append(lists, l)
		byID[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "load lists", Err: err}
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT id, list_id, name, done, remote_id, created_at, updated_at, deleted_at, version
		FROM items ORDER BY list_id, id`)
	if err != nil {
		return nil, &StoreError{Op: "load items", Err: err}
	}
	defer itemRows.Close()

	for itemRows.Next() {
		it := &store.Item{}
		var remoteID sql.NullString
		var updatedAt, deletedAt sql.NullInt64
		var createdAt int64
		var done int
		if err := itemRows.Scan(&it.ID, &it.ListID, &it.Name, &done, &remoteID, &createdAt, &updatedAt, &deletedAt, &it.Version); err != nil {
			return nil, &StoreError{Op: "scan item", Err: err}
		}
		it.Done = done != 0
		it.RemoteID = remoteID.String
		it.CreatedAt = time.Unix(createdAt, 0).UTC()
		it.UpdatedAt = nullEpoch(updatedAt)
		it.DeletedAt = nullEpochPtr(deletedAt)
		if l, ok := byID[it.ListID]; ok {
			l.Items = append(l.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, &StoreError{Op: "load items", Err: err}
	}

	return lists, nil
}

// CommitCycle persists the full in-memory snapshot in one transaction.
// Records with a zero ID are inserts and receive storage-assigned ids before
// their items are written. The transaction either commits everything the
// cycle decided or nothing.
func (s *Store) CommitCycle(ctx context.Context, lists []*store.List) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Op: "begin commit", Err: err}
	}
	defer tx.Rollback()

	for _, l := range lists {
		if l.ID == 0 {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO lists (name, remote_id, created_at, updated_at, deleted_at, version)
				VALUES (?, ?, ?, ?, ?, ?)`,
				l.Name, nullString(l.RemoteID), l.CreatedAt.Unix(), epochNull(l.UpdatedAt), epochPtrNull(l.DeletedAt), newVersion())
			if err != nil {
				return &StoreError{Op: "insert list", Err: err}
			}
			l.ID, err = res.LastInsertId()
			if err != nil {
				return &StoreError{Op: "insert list", Err: err}
			}
		} else {
			if _, err := tx.ExecContext(ctx, `
				UPDATE lists SET name = ?, remote_id = ?, updated_at = ?, deleted_at = ?
				WHERE id = ?`,
				l.Name, nullString(l.RemoteID), epochNull(l.UpdatedAt), epochPtrNull(l.DeletedAt), l.ID); err != nil {
				return &StoreError{Op: "update list", Err: err, ListID: l.ID}
			}
		}

		for _, it := range l.Items {
			it.ListID = l.ID
			if it.ID == 0 {
				res, err := tx.ExecContext(ctx, `
					INSERT INTO items (list_id, name, done, remote_id, created_at, updated_at, deleted_at, version)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					it.ListID, it.Name, boolInt(it.Done), nullString(it.RemoteID), it.CreatedAt.Unix(), epochNull(it.UpdatedAt), epochPtrNull(it.DeletedAt), newVersion())
				if err != nil {
					return &StoreError{Op: "insert item", Err: err, ListID: l.ID}
				}
				it.ID, err = res.LastInsertId()
				if err != nil {
					return &StoreError{Op: "insert item", Err: err, ListID: l.ID}
				}
			} else {
				if _, err := tx.ExecContext(ctx, `
					UPDATE items SET name = ?, done = ?, remote_id = ?, updated_at = ?, deleted_at = ?
					WHERE id = ?`,
					it.Name, boolInt(it.Done), nullString(it.RemoteID), epochNull(it.UpdatedAt), epochPtrNull(it.DeletedAt), it.ID); err != nil {
					return &StoreError{Op: "update item", Err: err, ItemID: it.ID}
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	return nil
}

// null scanning / binding helpers

func nullEpoch(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.Unix(v.Int64, 0).UTC()
}

func nullEpochPtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func epochNull(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}

func epochPtrNull(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func newVersion() string {
	return uuid.NewString()
}
