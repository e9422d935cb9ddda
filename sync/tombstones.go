package sync

import (
	"context"
	"errors"

	"listsync/remote"
	"listsync/store"
)

// propagateTombstones issues remote deletions for tombstoned local records.
// List tombstones go first; item tombstones are only processed for lists that
// are not themselves tombstoned, since deleting the list already removes its
// items. Failures are contained per record: the tombstone stays in place and
// becomes eligible for a retry on the next cycle.
func (e *Engine) propagateTombstones(ctx context.Context, locals []*store.List, res *Result) {
	for _, l := range locals {
		if ctx.Err() != nil {
			return
		}
		if !l.Deleted() || !l.Linked() {
			continue
		}
		e.deleteOutcome(e.client.DeleteList(ctx, l.RemoteID), res, func() {
			e.log.Info().Int64("list", l.ID).Str("remote_id", l.RemoteID).Msg("deleted list remotely")
		})
	}

	for _, l := range locals {
		if l.Deleted() || !l.Linked() {
			continue
		}
		for _, it := range l.Items {
			if ctx.Err() != nil {
				return
			}
			if !it.Deleted() || !it.Linked() {
				continue
			}
			e.deleteOutcome(e.client.DeleteItem(ctx, l.RemoteID, it.RemoteID), res, func() {
				e.log.Info().Int64("item", it.ID).Str("remote_id", it.RemoteID).Msg("deleted item remotely")
			})
		}
	}
}

// deleteOutcome applies the three-way delete contract: success proceeds,
// not-found counts as success, anything else is logged and skipped.
func (e *Engine) deleteOutcome(err error, res *Result, logSuccess func()) {
	switch {
	case err == nil:
		res.Deleted++
		logSuccess()
	case errors.Is(err, remote.ErrNotFound):
		// already absent remotely; the delete intent is satisfied
		res.Deleted++
	default:
		res.DeleteRetries++
		e.log.Warn().Err(err).Msg("remote delete failed; will retry next cycle")
	}
}
