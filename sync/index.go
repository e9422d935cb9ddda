package sync

import (
	"strconv"

	"listsync/remote"
	"listsync/store"
)

// Index maps are rebuilt from the full snapshot every cycle and never outlive
// it. Records with a blank id field are skipped; a duplicate id within one
// batch wins by iteration order.

type localListIndex struct {
	byID       map[int64]*store.List
	byRemoteID map[string]*store.List
}

func indexLocalLists(lists []*store.List) localListIndex {
	idx := localListIndex{
		byID:       make(map[int64]*store.List, len(lists)),
		byRemoteID: make(map[string]*store.List),
	}
	for _, l := range lists {
		if l.ID != 0 {
			idx.byID[l.ID] = l
		}
		if l.RemoteID != "" {
			idx.byRemoteID[l.RemoteID] = l
		}
	}
	return idx
}

type remoteListIndex struct {
	byID       map[string]*remote.List
	bySourceID map[string]*remote.List
}

func indexRemoteLists(lists []remote.List) remoteListIndex {
	idx := remoteListIndex{
		byID:       make(map[string]*remote.List, len(lists)),
		bySourceID: make(map[string]*remote.List),
	}
	for i := range lists {
		r := &lists[i]
		if r.ID != "" {
			idx.byID[r.ID] = r
		}
		if r.SourceID != "" {
			idx.bySourceID[r.SourceID] = r
		}
	}
	return idx
}

type localItemIndex struct {
	byID       map[int64]*store.Item
	byRemoteID map[string]*store.Item
}

// indexLocalItems includes tombstoned items: a tombstone must keep matching
// its remote counterpart so it is never re-imported.
func indexLocalItems(items []*store.Item) localItemIndex {
	idx := localItemIndex{
		byID:       make(map[int64]*store.Item, len(items)),
		byRemoteID: make(map[string]*store.Item),
	}
	for _, it := range items {
		if it.ID != 0 {
			idx.byID[it.ID] = it
		}
		if it.RemoteID != "" {
			idx.byRemoteID[it.RemoteID] = it
		}
	}
	return idx
}

type remoteItemIndex struct {
	byID       map[string]*remote.Item
	bySourceID map[string]*remote.Item
}

func indexRemoteItems(list *remote.List) remoteItemIndex {
	idx := remoteItemIndex{
		byID:       make(map[string]*remote.Item, len(list.Items)),
		bySourceID: make(map[string]*remote.Item),
	}
	for i := range list.Items {
		it := &list.Items[i]
		if it.ID != "" {
			idx.byID[it.ID] = it
		}
		if it.SourceID != "" {
			idx.bySourceID[it.SourceID] = it
		}
	}
	return idx
}

// formatID renders a local numeric id the way remote source ids carry it.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseSourceID parses a remote source id back into a local numeric id.
func parseSourceID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
