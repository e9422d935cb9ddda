package sync

import (
	"listsync/store"
)

// linkLists attaches remote ids to local lists that lack one, by matching the
// remote source-id map against the local numeric id. Runs before any
// create/update decision so the rest of the cycle sees a maximally-linked
// index. An already-linked pair is never re-resolved.
func (e *Engine) linkLists(locals []*store.List, rIdx remoteListIndex, res *Result) {
	for _, l := range locals {
		if l.Linked() {
			continue
		}
		r, ok := rIdx.bySourceID[formatID(l.ID)]
		if !ok {
			continue
		}
		l.RemoteID = r.ID
		l.UpdatedAt = e.now()
		res.Linked++
		e.log.Debug().Int64("list", l.ID).Str("remote_id", r.ID).Msg("linked list by source id")
	}
}

// linkItems does the same for the items of one linked list pair.
func (e *Engine) linkItems(items []*store.Item, rIdx remoteItemIndex, res *Result) {
	for _, it := range items {
		if it.Linked() {
			continue
		}
		r, ok := rIdx.bySourceID[formatID(it.ID)]
		if !ok {
			continue
		}
		it.RemoteID = r.ID
		it.UpdatedAt = e.now()
		res.Linked++
	}
}
