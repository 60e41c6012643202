package httpcache

import "github.com/corecache/httpcache/store"

// Entry is the persisted record for one cached resource; see store.Entry
// for the field-by-field contract. Aliased here so callers working only
// against the root package never need to import store directly.
type Entry = store.Entry

// MetadataStore and BlobStore are aliased for the same reason.
type MetadataStore = store.MetadataStore
type BlobStore = store.BlobStore
