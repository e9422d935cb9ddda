package remote

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryClient implements Client entirely in memory. It mirrors the remote
// service contract (ids assigned on create, permissive item upsert, 404-style
// not-found errors) so the engine can run without a live network dependency.
// Selected via the config remote mode "memory"; also the shared test double.
type MemoryClient struct {
	mu    sync.Mutex
	lists []List

	// Calls counts invocations per operation name.
	Calls map[string]int

	// FailOp, when set, makes every invocation of that operation return
	// FailErr. Used by tests to exercise failure containment.
	FailOp  string
	FailErr error

	now func() time.Time
}

// MemoryClient implements Client.
var _ Client = (*MemoryClient)(nil)

// NewMemoryClient creates an empty in-memory remote store.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		Calls: make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the clock used for created/updated timestamps.
func (m *MemoryClient) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Seed installs lists directly, bypassing call accounting. Test setup only.
func (m *MemoryClient) Seed(lists ...List) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists = append(m.lists, lists...)
}

// Snapshot returns a deep copy of the current remote state.
func (m *MemoryClient) Snapshot() []List {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyLists(m.lists)
}

func (m *MemoryClient) record(op string) error {
	m.Calls[op]++
	if m.FailOp == op && m.FailErr != nil {
		return m.FailErr
	}
	return nil
}

func (m *MemoryClient) findList(id string) *List {
	for i := range m.lists {
		if m.lists[i].ID == id {
			return &m.lists[i]
		}
	}
	return nil
}

func (m *MemoryClient) GetLists(ctx context.Context) ([]List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetLists"); err != nil {
		return nil, err
	}
	return copyLists(m.lists), nil
}

func (m *MemoryClient) CreateList(ctx context.Context, req CreateListRequest) (*List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateList"); err != nil {
		return nil, err
	}

	now := m.now()
	list := List{
		ID:        uuid.NewString(),
		SourceID:  req.SourceID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, it := range req.Items {
		list.Items = append(list.Items, Item{
			ID:          uuid.NewString(),
			SourceID:    it.SourceID,
			Description: it.Description,
			Completed:   it.Completed,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	m.lists = append(m.lists, list)

	created := copyList(list)
	return &created, nil
}

func (m *MemoryClient) UpdateList(ctx context.Context, listID string, req UpdateListRequest) (*List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateList"); err != nil {
		return nil, err
	}

	l := m.findList(listID)
	if l == nil {
		return nil, NewAPIError("UpdateList", 404, "list not found")
	}
	if req.Name != "" {
		l.Name = req.Name
	}
	l.UpdatedAt = m.now()

	updated := copyList(*l)
	return &updated, nil
}

func (m *MemoryClient) DeleteList(ctx context.Context, listID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteList"); err != nil {
		return err
	}

	for i := range m.lists {
		if m.lists[i].ID == listID {
			m.lists = append(m.lists[:i], m.lists[i+1:]...)
			return nil
		}
	}
	return NewAPIError("DeleteList", 404, "list not found")
}

// UpdateItem upserts: an unknown itemID is created under that id, so clients
// may mint ids for items the remote has never seen.
func (m *MemoryClient) UpdateItem(ctx context.Context, listID, itemID string, req UpdateItemRequest) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateItem"); err != nil {
		return nil, err
	}

	l := m.findList(listID)
	if l == nil {
		return nil, NewAPIError("UpdateItem", 404, "list not found")
	}

	now := m.now()
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			it := &l.Items[i]
			if req.Description != "" {
				it.Description = req.Description
			}
			if req.Completed != nil {
				it.Completed = *req.Completed
			}
			if req.SourceID != "" {
				it.SourceID = req.SourceID
			}
			it.UpdatedAt = now
			updated := *it
			return &updated, nil
		}
	}

	item := Item{
		ID:          itemID,
		SourceID:    req.SourceID,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}
	l.Items = append(l.Items, item)

	created := item
	return &created, nil
}

func (m *MemoryClient) DeleteItem(ctx context.Context, listID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteItem"); err != nil {
		return err
	}

	l := m.findList(listID)
	if l == nil {
		return NewAPIError("DeleteItem", 404, "list not found")
	}
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return nil
		}
	}
	return NewAPIError("DeleteItem", 404, "item not found")
}

// MutationCalls sums every call that writes remote state. Tests use it to
// assert that a settled cycle issues no writes.
func (m *MemoryClient) MutationCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls["CreateList"] + m.Calls["UpdateList"] + m.Calls["DeleteList"] +
		m.Calls["UpdateItem"] + m.Calls["DeleteItem"]
}

func copyLists(lists []List) []List {
	out := make([]List, len(lists))
	for i, l := range lists {
		out[i] = copyList(l)
	}
	return out
}

func copyList(l List) List {
	items := make([]Item, len(l.Items))
	copy(items, l.Items)
	l.Items = items
	return l
}
