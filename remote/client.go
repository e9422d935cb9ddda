// Package remote defines the remote todo service capability consumed by the
// reconciliation engine, with an HTTP implementation and an in-memory one
// mirroring the same contract.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// List is a list as the remote service reports it. SourceID, when present,
// echoes the local numeric list id and is used to link records that do not
// yet know each other's identifiers.
type List struct {
	ID        string    `json:"id"`
	SourceID  string    `json:"source_id,omitempty"`
	Name      string    `json:"name"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is a single entry within a remote list. Its position in the owning
// list's Items slice is the only ownership record the remote side keeps.
type Item struct {
	ID          string    `json:"id"`
	SourceID    string    `json:"source_id,omitempty"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateListRequest is the payload for creating a list together with its
// current items. SourceIDs carry the local numeric ids so later cycles can
// link the records.
type CreateListRequest struct {
	Name     string              `json:"name"`
	SourceID string              `json:"source_id,omitempty"`
	Items    []CreateItemRequest `json:"items,omitempty"`
}

// CreateItemRequest is one item payload inside CreateListRequest.
type CreateItemRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	SourceID    string `json:"source_id,omitempty"`
}

// UpdateListRequest carries the mutable list fields.
type UpdateListRequest struct {
	Name string `json:"name,omitempty"`
}

// UpdateItemRequest carries the mutable item fields. The remote service
// treats the call as a permissive upsert: if the referenced item does not
// exist it may be created under the given id.
type UpdateItemRequest struct {
	Description string `json:"description,omitempty"`
	Completed   *bool  `json:"completed,omitempty"`
	SourceID    string `json:"source_id,omitempty"`
}

// Client is the remote capability set the engine depends on. Implementations
// must serialize their own internal state; the engine issues calls
// sequentially, one record at a time.
type Client interface {
	GetLists(ctx context.Context) ([]List, error)
	CreateList(ctx context.Context, req CreateListRequest) (*List, error)
	UpdateList(ctx context.Context, listID string, req UpdateListRequest) (*List, error)
	DeleteList(ctx context.Context, listID string) error
	UpdateItem(ctx context.Context, listID, itemID string, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, listID, itemID string) error
}

// ErrNotFound matches any remote error caused by a missing record. Delete
// paths treat it as success: the absence of the record already satisfies the
// delete intent.
var ErrNotFound = errors.New("remote: not found")

// APIError represents a failed remote operation with HTTP-level detail.
type APIError struct {
	Op         string // e.g. "DeleteList", "UpdateItem"
	StatusCode int    // 0 if not an HTTP error
	Message    string
	Body       string // response body, for debugging
	Err        error  // underlying error, if any
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) classify 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

// NewAPIError creates an APIError for the given operation and status.
func NewAPIError(op string, statusCode int, message string) *APIError {
	return &APIError{Op: op, StatusCode: statusCode, Message: message}
}
