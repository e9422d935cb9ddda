// Package sync implements the reconciliation engine: once per cycle both
// sides are loaded in full, indexed, linked across the two identifier spaces,
// and reconciled record by record with a last-writer-wins rule. Remote writes
// happen inside the cycle; local changes commit in one batch at the end.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"listsync/remote"
	"listsync/store"
)

// Store is the local persistence capability the engine consumes: one full
// snapshot in, one atomic commit out.
type Store interface {
	LoadLists(ctx context.Context) ([]*store.List, error)
	CommitCycle(ctx context.Context, lists []*store.List) error
}

// Engine reconciles the local store with the remote service. It holds no
// state between cycles; every cycle starts from fresh snapshots.
type Engine struct {
	store  Store
	client remote.Client
	log    zerolog.Logger

	now   func() time.Time // injectable clock
	newID func() string    // minted remote item ids for the upsert path
}

// NewEngine creates an engine over the given store and remote client.
func NewEngine(st Store, client remote.Client, log zerolog.Logger) *Engine {
	return &Engine{
		store:  st,
		client: client,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Result summarizes what one cycle did.
type Result struct {
	Linked        int // records that acquired a remote id via cross-reference
	ListsImported int
	ListsExported int
	ItemsImported int
	ItemsExported int
	Pushed        int // local-newer updates written remotely
	Pulled        int // remote-newer updates applied locally
	Deleted       int // remote deletions confirmed (incl. already absent)
	DeleteRetries int // failed deletions left for the next cycle
	Duration      time.Duration
}

// RunCycle performs one full reconciliation pass:
// load -> index -> link -> delete -> create-missing -> update -> commit.
// Failures in the create/update paths abort the remainder of the cycle;
// failures in the delete path never do. Local persistence commits only when
// the whole in-memory pass completes, so local state is all-or-nothing per
// cycle while remote writes issued before a failure remain in effect.
func (e *Engine) RunCycle(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{}

	remotes, err := e.client.GetLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("load remote snapshot: %w", err)
	}
	locals, err := e.store.LoadLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local snapshot: %w", err)
	}

	rIdx := indexRemoteLists(remotes)
	lIdx := indexLocalLists(locals)

	e.linkLists(locals, rIdx, res)
	e.propagateTombstones(ctx, locals, res)
	locals = append(locals, e.importLists(remotes, lIdx, res)...)
	if err := e.exportLists(ctx, locals, rIdx, res); err != nil {
		return res, err
	}
	if err := e.applyUpdates(ctx, locals, rIdx, res); err != nil {
		return res, err
	}
	if err := e.store.CommitCycle(ctx, locals); err != nil {
		return res, fmt.Errorf("commit local changes: %w", err)
	}

	res.Duration = time.Since(start)
	e.log.Debug().
		Int("linked", res.Linked).
		Int("lists_imported", res.ListsImported).
		Int("lists_exported", res.ListsExported).
		Int("items_imported", res.ItemsImported).
		Int("items_exported", res.ItemsExported).
		Int("pushed", res.Pushed).
		Int("pulled", res.Pulled).
		Int("deleted", res.Deleted).
		Int("delete_retries", res.DeleteRetries).
		Dur("duration", res.Duration).
		Msg("reconciliation cycle complete")
	return res, nil
}
