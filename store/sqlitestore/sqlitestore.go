// Package sqlitestore is a SQLite-backed implementation of
// store.MetadataStore and store.BlobStore, adapted from the SQLite cache
// provider used by the reverse-proxy incarnation of this cache: same driver,
// same write-serialization and WAL setup, restructured into the two
// independent tables the engine's storage contract expects.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/corecache/httpcache/store"
)

// Open opens (or creates) a SQLite database at filename and returns both
// store implementations backed by it. Passing "" opens an in-memory database
// in SQLite's shared-cache mode, so every Open("") in the same process sees
// the same data.
func Open(filename string) (*Metadata, *Blob, error) {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS metadata (
		url TEXT PRIMARY KEY,
		record TEXT NOT NULL
	)`); err != nil {
		return nil, nil, fmt.Errorf("sqlitestore: create metadata table: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		body BLOB
	)`); err != nil {
		return nil, nil, fmt.Errorf("sqlitestore: create blobs table: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, nil, fmt.Errorf("sqlitestore: set journal mode: %w", err)
	}

	mu := &sync.Mutex{}
	return &Metadata{db: db, writeMutex: mu}, &Blob{db: db, writeMutex: mu}, nil
}

// record is the JSON wire shape for store.Entry: time.Time and http.Header
// serialize cleanly, and this keeps the schema legible in the db file for
// operators who go looking with a plain sqlite3 shell.
type record struct {
	ID                            string
	ResponseTime                  time.Time
	LastModified                  time.Time
	ETag                          string
	Vary                          map[string]string
	Method                        string
	Status                        int
	CorrectedInitialAgeNanos      int64
	LifetimeNanos                 int64
	MustRevalidateWhenStale       bool
	SharedMustRevalidateWhenStale bool
	AlwaysRevalidate              bool
	ResponseHeaders               http.Header
	Invalidated                   bool
	ContentLength                 string
	ContentType                   string
	ContentLanguage               string
	ContentEncoding               string
}

func toRecord(e store.Entry) record {
	return record{
		ID:                            e.ID,
		ResponseTime:                  e.ResponseTime,
		LastModified:                  e.LastModified,
		ETag:                          e.ETag,
		Vary:                          e.Vary,
		Method:                        e.Method,
		Status:                        e.Status,
		CorrectedInitialAgeNanos:      int64(e.CorrectedInitialAge),
		LifetimeNanos:                 int64(e.Lifetime),
		MustRevalidateWhenStale:       e.MustRevalidateWhenStale,
		SharedMustRevalidateWhenStale: e.SharedMustRevalidateWhenStale,
		AlwaysRevalidate:              e.AlwaysRevalidate,
		ResponseHeaders:               e.ResponseHeaders,
		Invalidated:                   e.Invalidated,
		ContentLength:                 e.ContentLength,
		ContentType:                   e.ContentType,
		ContentLanguage:               e.ContentLanguage,
		ContentEncoding:               e.ContentEncoding,
	}
}

func fromRecord(r record) store.Entry {
	return store.Entry{
		ID:                            r.ID,
		ResponseTime:                  r.ResponseTime,
		LastModified:                  r.LastModified,
		ETag:                          r.ETag,
		Vary:                          r.Vary,
		Method:                        r.Method,
		Status:                        r.Status,
		CorrectedInitialAge:           time.Duration(r.CorrectedInitialAgeNanos),
		Lifetime:                      time.Duration(r.LifetimeNanos),
		MustRevalidateWhenStale:       r.MustRevalidateWhenStale,
		SharedMustRevalidateWhenStale: r.SharedMustRevalidateWhenStale,
		AlwaysRevalidate:              r.AlwaysRevalidate,
		ResponseHeaders:               r.ResponseHeaders,
		Invalidated:                   r.Invalidated,
		ContentLength:                 r.ContentLength,
		ContentType:                   r.ContentType,
		ContentLanguage:               r.ContentLanguage,
		ContentEncoding:               r.ContentEncoding,
	}
}

// Metadata is a SQLite-backed store.MetadataStore.
type Metadata struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

func (m *Metadata) Get(ctx context.Context, url string) (store.Entry, error) {
	var raw string
	err := m.db.QueryRowContext(ctx, "SELECT record FROM metadata WHERE url = ?", url).Scan(&raw)
	if err == sql.ErrNoRows {
		return store.Entry{}, store.ErrNotFound
	}
	if err != nil {
		return store.Entry{}, fmt.Errorf("sqlitestore: get metadata: %w", err)
	}
	var r record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return store.Entry{}, fmt.Errorf("sqlitestore: decode metadata: %w", err)
	}
	return fromRecord(r), nil
}

func (m *Metadata) Set(ctx context.Context, url string, entry store.Entry) error {
	raw, err := json.Marshal(toRecord(entry))
	if err != nil {
		return fmt.Errorf("sqlitestore: encode metadata: %w", err)
	}
	m.writeMutex.Lock()
	defer m.writeMutex.Unlock()
	_, err = m.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO metadata (url, record) VALUES (?, ?)", url, string(raw))
	if err != nil {
		return fmt.Errorf("sqlitestore: set metadata: %w", err)
	}
	return nil
}

func (m *Metadata) Delete(ctx context.Context, url string) error {
	m.writeMutex.Lock()
	defer m.writeMutex.Unlock()
	if _, err := m.db.ExecContext(ctx, "DELETE FROM metadata WHERE url = ?", url); err != nil {
		return fmt.Errorf("sqlitestore: delete metadata: %w", err)
	}
	return nil
}

// Blob is a SQLite-backed store.BlobStore.
type Blob struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

func (b *Blob) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := b.db.QueryRowContext(ctx, "SELECT body FROM blobs WHERE key = ?", key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get blob: %w", err)
	}
	return body, nil
}

func (b *Blob) Set(ctx context.Context, key string, body []byte) error {
	b.writeMutex.Lock()
	defer b.writeMutex.Unlock()
	_, err := b.db.ExecContext(ctx, "INSERT OR REPLACE INTO blobs (key, body) VALUES (?, ?)", key, body)
	if err != nil {
		return fmt.Errorf("sqlitestore: set blob: %w", err)
	}
	return nil
}

func (b *Blob) Delete(ctx context.Context, key string) error {
	b.writeMutex.Lock()
	defer b.writeMutex.Unlock()
	if _, err := b.db.ExecContext(ctx, "DELETE FROM blobs WHERE key = ?", key); err != nil {
		return fmt.Errorf("sqlitestore: delete blob: %w", err)
	}
	return nil
}
