package memstore

import (
	"context"
	"testing"

	"github.com/corecache/httpcache/store"
)

func TestMetadataGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMetadata()

	if _, err := m.Get(ctx, "u"); err != store.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	entry := store.Entry{ID: "id1", Status: 200}
	if err := m.Set(ctx, "u", entry); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "u")
	if err != nil || got.ID != "id1" {
		t.Fatalf("got (%v, %v)", got, err)
	}

	if err := m.Delete(ctx, "u"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "u"); err != store.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
}

func TestBlobGetSetIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	b := NewBlob()

	body := []byte("hello")
	if err := b.Set(ctx, "k", body); err != nil {
		t.Fatalf("Set: %v", err)
	}
	body[0] = 'X' // mutating the caller's slice must not affect the stored copy

	got, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}
