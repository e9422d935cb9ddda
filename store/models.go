// Package store defines the local data model and the persistence contract
// consumed by the reconciliation engine.
package store

import "time"

// List is a locally stored todo list. The numeric ID is assigned by local
// storage and never reused. RemoteID is empty until the list has been linked
// to its remote counterpart. A non-nil DeletedAt marks the list as a
// tombstone: logically deleted, physically retained until the remote deletion
// has been confirmed.
type List struct {
	ID        int64
	Name      string
	Items     []*Item
	RemoteID  string
	CreatedAt time.Time
	UpdatedAt time.Time // zero value means never modified
	DeletedAt *time.Time
	Version   string // opaque optimistic-concurrency token, rotated on every CRUD write
}

// Item is a single entry in a List. Same identifier and tombstone semantics
// as List.
type Item struct {
	ID        int64
	ListID    int64
	Name      string
	Done      bool
	RemoteID  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	Version   string
}

// Deleted reports whether the list is tombstoned.
func (l *List) Deleted() bool {
	return l.DeletedAt != nil
}

// Deleted reports whether the item is tombstoned.
func (i *Item) Deleted() bool {
	return i.DeletedAt != nil
}

// Linked reports whether the list carries a remote identifier.
func (l *List) Linked() bool {
	return l.RemoteID != ""
}

// Linked reports whether the item carries a remote identifier.
func (i *Item) Linked() bool {
	return i.RemoteID != ""
}
