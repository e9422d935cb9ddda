package sync

import (
	"context"
	"fmt"
	"time"

	"listsync/remote"
	"listsync/store"
)

// applyUpdates runs the last-writer-wins comparison over every list that is
// linked on both sides and not tombstoned, then recurses into its items. A
// strictly newer local timestamp pushes, a strictly newer remote timestamp
// pulls, a tie does nothing. A missing remote timestamp compares as the zero
// time. Failures abort the cycle; the next one retries from fresh snapshots.
func (e *Engine) applyUpdates(ctx context.Context, locals []*store.List, rIdx remoteListIndex, res *Result) error {
	for _, l := range locals {
		if l.Deleted() || !l.Linked() {
			continue
		}
		r := rIdx.byID[l.RemoteID]
		if r == nil {
			continue
		}

		switch {
		case l.UpdatedAt.After(r.UpdatedAt):
			if _, err := e.client.UpdateList(ctx, l.RemoteID, remote.UpdateListRequest{Name: l.Name}); err != nil {
				return fmt.Errorf("push list %d: %w", l.ID, err)
			}
			res.Pushed++
			e.log.Debug().Int64("list", l.ID).Msg("pushed list update")
		case r.UpdatedAt.After(l.UpdatedAt):
			l.Name = r.Name
			l.UpdatedAt = r.UpdatedAt
			res.Pulled++
			e.log.Debug().Int64("list", l.ID).Msg("pulled list update")
		}

		if err := e.reconcileItems(ctx, l, r, res); err != nil {
			return err
		}
	}
	return nil
}

// reconcileItems applies the same protocol one level down: index the remote
// items of the matched list, link by cross-reference, import remote-only
// items, then LWW over every live local item. Local items the remote has
// never seen go out through the permissive upsert under a freshly minted id.
func (e *Engine) reconcileItems(ctx context.Context, l *store.List, r *remote.List, res *Result) error {
	riIdx := indexRemoteItems(r)
	liIdx := indexLocalItems(l.Items)

	e.linkItems(l.Items, riIdx, res)

	for i := range r.Items {
		ri := &r.Items[i]
		if _, ok := liIdx.byRemoteID[ri.ID]; ok {
			continue
		}
		if id, ok := parseSourceID(ri.SourceID); ok {
			// tombstoned matches count: a deleted local item is never re-imported
			if _, exists := liIdx.byID[id]; exists {
				continue
			}
		}
		l.Items = append(l.Items, e.materializeItem(ri))
		res.ItemsImported++
		e.log.Debug().Int64("list", l.ID).Str("remote_item", ri.ID).Msg("imported remote item")
	}

	for _, it := range l.Items {
		if it.Deleted() {
			continue
		}

		if !it.Linked() {
			id := e.newID()
			if _, err := e.client.UpdateItem(ctx, l.RemoteID, id, e.upsertRequest(it)); err != nil {
				return fmt.Errorf("export item %d: %w", it.ID, err)
			}
			it.RemoteID = id
			it.UpdatedAt = e.now()
			res.ItemsExported++
			e.log.Debug().Int64("item", it.ID).Str("remote_id", id).Msg("exported item remotely")
			continue
		}

		var remoteUpdated time.Time
		ri := riIdx.byID[it.RemoteID]
		if ri != nil {
			remoteUpdated = ri.UpdatedAt
		}

		switch {
		case it.UpdatedAt.After(remoteUpdated):
			if _, err := e.client.UpdateItem(ctx, l.RemoteID, it.RemoteID, e.upsertRequest(it)); err != nil {
				return fmt.Errorf("push item %d: %w", it.ID, err)
			}
			res.Pushed++
			e.log.Debug().Int64("item", it.ID).Msg("pushed item update")
		case ri != nil && ri.UpdatedAt.After(it.UpdatedAt):
			it.Name = ri.Description
			it.Done = ri.Completed
			it.UpdatedAt = ri.UpdatedAt
			res.Pulled++
			e.log.Debug().Int64("item", it.ID).Msg("pulled item update")
		}
	}
	return nil
}

func (e *Engine) upsertRequest(it *store.Item) remote.UpdateItemRequest {
	done := it.Done
	return remote.UpdateItemRequest{
		Description: it.Name,
		Completed:   &done,
		SourceID:    formatID(it.ID),
	}
}
