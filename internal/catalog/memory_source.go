package catalog

import (
	"context"
	"sort"
	"sync"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
)

// MemorySource holds documents in memory. It backs tests and previews of
// content that has not been written anywhere yet.
type MemorySource struct {
	mu   sync.RWMutex
	docs map[string]memoryDoc
}

type memoryDoc struct {
	key  Key
	data []byte
}

// NewMemorySource creates an empty in-memory source
func NewMemorySource() *MemorySource {
	return &MemorySource{docs: make(map[string]memoryDoc)}
}

// Put implements Writer.Put
func (m *MemorySource) Put(ctx context.Context, key Key, doc *Node) error {
	if err := key.Validate(); err != nil {
		return err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return rcerr.Wrapf(err, "failed to encode %s", key)
	}
	return m.PutRaw(key, data)
}

// PutRaw stores undecoded JSON, so broken documents can be staged too
func (m *MemorySource) PutRaw(key Key, data []byte) error {
	if err := key.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key.String()] = memoryDoc{key: key, data: append([]byte(nil), data...)}
	return nil
}

// Get implements Source.Get
func (m *MemorySource) Get(_ context.Context, key Key) (*Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key.String()]
	if !ok {
		return nil, rcerr.NotFoundf("document %s not found", key)
	}
	return &Resource{
		Key:      doc.key,
		Format:   FormatJSON,
		Location: "memory:" + key.String(),
		Data:     append([]byte(nil), doc.data...),
	}, nil
}

// List implements Lister.List
func (m *MemorySource) List(_ context.Context) ([]Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]Key, 0, len(m.docs))
	for _, doc := range m.docs {
		keys = append(keys, doc.key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys, nil
}
