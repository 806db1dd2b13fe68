package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryMirror is an in-process Mirror used in tests. Documents are stored
// per user as JSON field blobs, matching the Redis layout, and subscribers
// are invoked synchronously on every write.
type MemoryMirror struct {
	mu          sync.Mutex
	docs        map[string]map[string][]byte
	subscribers map[string][]*memorySubscription
}

type memorySubscription struct {
	fn        func(Document)
	cancelled bool
}

func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{
		docs:        make(map[string]map[string][]byte),
		subscribers: make(map[string][]*memorySubscription),
	}
}

func (m *MemoryMirror) Replace(ctx context.Context, userID, field string, value any) error {
	return m.Patch(ctx, userID, map[string]any{field: value})
}

func (m *MemoryMirror) Patch(_ context.Context, userID string, fields map[string]any) error {
	m.mu.Lock()
	doc := m.docs[userID]
	if doc == nil {
		doc = make(map[string][]byte)
		m.docs[userID] = doc
	}
	for field, value := range fields {
		blob, err := json.Marshal(value)
		if err != nil {
			m.mu.Unlock()
			return fmt.Errorf("marshal %s: %w", field, err)
		}
		doc[field] = blob
	}
	subs := m.activeSubscribers(userID)
	snapshot := decodeDocument(doc)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
	return nil
}

func (m *MemoryMirror) Subscribe(_ context.Context, userID string, fn func(Document)) (CancelFunc, error) {
	m.mu.Lock()
	sub := &memorySubscription{fn: fn}
	m.subscribers[userID] = append(m.subscribers[userID], sub)
	doc, found := m.docs[userID]
	var snapshot Document
	if found {
		snapshot = decodeDocument(doc)
	}
	m.mu.Unlock()

	if found {
		fn(snapshot)
	}

	return func() {
		m.mu.Lock()
		sub.cancelled = true
		m.mu.Unlock()
	}, nil
}

// SeedDocument installs a remote document directly, as if another device had
// written it, and notifies subscribers.
func (m *MemoryMirror) SeedDocument(userID string, doc Document) {
	fields := map[string]any{}
	if doc.Tasks != nil {
		fields[FieldTasks] = doc.Tasks
	}
	if doc.Timer != nil {
		fields[FieldTimer] = doc.Timer
	}
	if doc.Projects != nil {
		fields[FieldProjects] = doc.Projects
	}
	if doc.Categories != nil {
		fields[FieldCategories] = doc.Categories
	}
	_ = m.Patch(context.Background(), userID, fields)
}

// Document returns the current decoded document for a user.
func (m *MemoryMirror) Document(userID string) (Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[userID]
	if !ok {
		return Document{}, false
	}
	return decodeDocument(doc), true
}

// SubscriberCount reports how many live subscriptions a user has.
func (m *MemoryMirror) SubscriberCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.activeSubscribers(userID))
}

func (m *MemoryMirror) activeSubscribers(userID string) []*memorySubscription {
	active := make([]*memorySubscription, 0, len(m.subscribers[userID]))
	for _, sub := range m.subscribers[userID] {
		if !sub.cancelled {
			active = append(active, sub)
		}
	}
	return active
}

func decodeDocument(fields map[string][]byte) Document {
	var doc Document
	if blob, ok := fields[FieldTasks]; ok {
		_ = json.Unmarshal(blob, &doc.Tasks)
	}
	if blob, ok := fields[FieldTimer]; ok {
		_ = json.Unmarshal(blob, &doc.Timer)
	}
	if blob, ok := fields[FieldProjects]; ok {
		_ = json.Unmarshal(blob, &doc.Projects)
	}
	if blob, ok := fields[FieldCategories]; ok {
		_ = json.Unmarshal(blob, &doc.Categories)
	}
	return doc
}
