package sqlitestore

import (
	"context"
	"testing"
	"time"

	"github.com/corecache/httpcache/store"
)

func TestMetadataRoundTrip(t *testing.T) {
	metadata, _, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()

	entry := store.Entry{
		ID:           "abc123",
		ResponseTime: time.Now().Truncate(time.Second),
		ETag:         `"v1"`,
		Method:       "GET",
		Status:       200,
		Lifetime:     60 * time.Second,
		Vary:         map[string]string{"accept-encoding": "gzip"},
	}
	if err := metadata.Set(ctx, "https://example.com/", entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := metadata.Get(ctx, "https://example.com/")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != entry.ID || got.ETag != entry.ETag || got.Lifetime != entry.Lifetime {
		t.Fatalf("got %+v, want %+v", got, entry)
	}

	if err := metadata.Delete(ctx, "https://example.com/"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := metadata.Get(ctx, "https://example.com/"); err != store.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	_, blobs, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()

	key := store.BlobKey("abc123", "https://example.com/")
	if err := blobs.Set(ctx, key, []byte("hello")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := blobs.Get(ctx, key)
	if err != nil || string(got) != "hello" {
		t.Fatalf("got (%q, %v)", got, err)
	}

	if err := blobs.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := blobs.Get(ctx, key); err != store.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
