// Package memstore provides an in-memory reference implementation of
// store.MetadataStore and store.BlobStore, suitable for tests and small
// deployments that don't need persistence across restarts.
package memstore

import (
	"context"
	"sync"

	"github.com/corecache/httpcache/store"
)

// Metadata is an in-memory store.MetadataStore.
type Metadata struct {
	mu      sync.RWMutex
	entries map[string]store.Entry
}

// NewMetadata returns an empty Metadata store.
func NewMetadata() *Metadata {
	return &Metadata{entries: make(map[string]store.Entry)}
}

func (m *Metadata) Get(_ context.Context, url string) (store.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[url]
	if !ok {
		return store.Entry{}, store.ErrNotFound
	}
	return entry, nil
}

func (m *Metadata) Set(_ context.Context, url string, entry store.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[url] = entry
	return nil
}

func (m *Metadata) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, url)
	return nil
}

// Blob is an in-memory store.BlobStore.
type Blob struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlob returns an empty Blob store.
func NewBlob() *Blob {
	return &Blob{blobs: make(map[string][]byte)}
}

func (b *Blob) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	body, ok := b.blobs[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (b *Blob) Set(_ context.Context, key string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := make([]byte, len(body))
	copy(stored, body)
	b.blobs[key] = stored
	return nil
}

func (b *Blob) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.blobs, key)
	return nil
}
