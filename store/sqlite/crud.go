package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"listsync/store"
)

// ErrNotFound is returned by CRUD operations targeting a missing or
// tombstoned record.
var ErrNotFound = errors.New("store: not found")

// CreateList inserts a new list and returns it with its assigned id.
func (s *Store) CreateList(ctx context.Context, name string) (*store.List, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (name, created_at, updated_at, version)
		VALUES (?, ?, ?, ?)`,
		name, now.Unix(), now.Unix(), newVersion())
	if err != nil {
		return nil, &StoreError{Op: "create list", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &StoreError{Op: "create list", Err: err}
	}
	return &store.List{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

// RenameList sets a new name on a live list and bumps its modification time.
func (s *Store) RenameList(ctx context.Context, id int64, name string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE lists SET name = ?, updated_at = ?, version = ?
		WHERE id = ? AND deleted_at IS NULL`,
		name, now.Unix(), newVersion(), id)
	if err != nil {
		return &StoreError{Op: "rename list", Err: err, ListID: id}
	}
	return affectedOrNotFound(res)
}

// DeleteList tombstones a list and all of its live items. The rows stay in
// place so the next reconciliation cycle can propagate the deletion remotely.
func (s *Store) DeleteList(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Op: "delete list", Err: err, ListID: id}
	}
	defer tx.Rollback()

	now := time.Now().UTC().Unix()
	res, err := tx.ExecContext(ctx, `
		UPDATE lists SET deleted_at = ?, updated_at = ?, version = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, newVersion(), id)
	if err != nil {
		return &StoreError{Op: "delete list", Err: err, ListID: id}
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE items SET deleted_at = ?, updated_at = ?, version = ?
		WHERE list_id = ? AND deleted_at IS NULL`,
		now, now, newVersion(), id); err != nil {
		return &StoreError{Op: "delete list items", Err: err, ListID: id}
	}
	return tx.Commit()
}

// AddItem inserts a new item into a live list.
func (s *Store) AddItem(ctx context.Context, listID int64, name string) (*store.Item, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM lists WHERE id = ? AND deleted_at IS NULL`, listID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "add item", Err: err, ListID: listID}
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (list_id, name, done, created_at, updated_at, version)
		VALUES (?, ?, 0, ?, ?, ?)`,
		listID, name, now.Unix(), now.Unix(), newVersion())
	if err != nil {
		return nil, &StoreError{Op: "add item", Err: err, ListID: listID}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &StoreError{Op: "add item", Err: err, ListID: listID}
	}
	return &store.Item{ID: id, ListID: listID, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

// SetItemDone flips the completion flag on a live item.
func (s *Store) SetItemDone(ctx context.Context, itemID int64, done bool) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET done = ?, updated_at = ?, version = ?
		WHERE id = ? AND deleted_at IS NULL`,
		boolInt(done), now.Unix(), newVersion(), itemID)
	if err != nil {
		return &StoreError{Op: "set item done", Err: err, ItemID: itemID}
	}
	return affectedOrNotFound(res)
}

// RenameItem sets a new name on a live item.
func (s *Store) RenameItem(ctx context.Context, itemID int64, name string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET name = ?, updated_at = ?, version = ?
		WHERE id = ? AND deleted_at IS NULL`,
		name, now.Unix(), newVersion(), itemID)
	if err != nil {
		return &StoreError{Op: "rename item", Err: err, ItemID: itemID}
	}
	return affectedOrNotFound(res)
}

// DeleteItem tombstones an item.
func (s *Store) DeleteItem(ctx context.Context, itemID int64) error {
	now := time.Now().UTC().Unix()
	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET deleted_at = ?, updated_at = ?, version = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, newVersion(), itemID)
	if err != nil {
		return &StoreError{Op: "delete item", Err: err, ItemID: itemID}
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
