package sync

import (
	"context"
	"fmt"
	"time"

	"listsync/remote"
	"listsync/store"
)

// placeholderName stands in for a blank name on an imported record.
const placeholderName = "(untitled)"

// importLists materializes local lists for remote entries with no local
// match. A direct remote-id match is checked first; the cross-reference match
// is an inference and only consulted when no direct link exists.
func (e *Engine) importLists(remotes []remote.List, lIdx localListIndex, res *Result) []*store.List {
	var added []*store.List
	for i := range remotes {
		r := &remotes[i]
		if _, ok := lIdx.byRemoteID[r.ID]; ok {
			continue
		}
		if id, ok := parseSourceID(r.SourceID); ok {
			if _, exists := lIdx.byID[id]; exists {
				continue
			}
		}
		l := e.materializeList(r)
		added = append(added, l)
		res.ListsImported++
		res.ItemsImported += len(l.Items)
		e.log.Info().Str("remote_id", r.ID).Str("name", l.Name).Int("items", len(l.Items)).Msg("imported remote list")
	}
	return added
}

func (e *Engine) materializeList(r *remote.List) *store.List {
	now := e.now()
	l := &store.List{
		Name:      orPlaceholder(r.Name),
		RemoteID:  r.ID,
		CreatedAt: orTime(r.CreatedAt, now),
		UpdatedAt: orTime(r.UpdatedAt, now),
	}
	for i := range r.Items {
		l.Items = append(l.Items, e.materializeItem(&r.Items[i]))
	}
	return l
}

func (e *Engine) materializeItem(r *remote.Item) *store.Item {
	now := e.now()
	return &store.Item{
		Name:      orPlaceholder(r.Description),
		Done:      r.Completed,
		RemoteID:  r.ID,
		CreatedAt: orTime(r.CreatedAt, now),
		UpdatedAt: orTime(r.UpdatedAt, now),
	}
}

// exportLists creates remote lists for local-only, non-tombstoned entries.
// The full payload goes out in one call, every record carrying its local id
// as the source id so future cycles can link item by item. The returned
// remote id is stored back immediately; a failure here aborts the cycle.
func (e *Engine) exportLists(ctx context.Context, locals []*store.List, rIdx remoteListIndex, res *Result) error {
	for _, l := range locals {
		if l.Deleted() {
			continue
		}
		if l.Linked() && rIdx.byID[l.RemoteID] != nil {
			continue
		}
		if rIdx.bySourceID[formatID(l.ID)] != nil {
			continue
		}

		req := remote.CreateListRequest{
			Name:     l.Name,
			SourceID: formatID(l.ID),
		}
		exported := 0
		for _, it := range l.Items {
			if it.Deleted() {
				continue
			}
			req.Items = append(req.Items, remote.CreateItemRequest{
				Description: it.Name,
				Completed:   it.Done,
				SourceID:    formatID(it.ID),
			})
			exported++
		}

		created, err := e.client.CreateList(ctx, req)
		if err != nil {
			return fmt.Errorf("export list %d %q: %w", l.ID, l.Name, err)
		}
		l.RemoteID = created.ID
		l.UpdatedAt = e.now()
		res.ListsExported++
		res.ItemsExported += exported
		e.log.Info().Int64("list", l.ID).Str("remote_id", created.ID).Msg("exported list remotely")
	}
	return nil
}

func orPlaceholder(name string) string {
	if name == "" {
		return placeholderName
	}
	return name
}

func orTime(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}
