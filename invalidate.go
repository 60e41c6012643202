package httpcache

import (
	"context"

	"github.com/corecache/httpcache/store"
)

// Invalidate marks any stored entry for url as requiring revalidation before
// it can ever be served again. It does not delete the entry or its blob —
// the sticky Invalidated flag is cheaper to set and lets a later freshening
// response clear it in place.
//
// §  4.4.  Invalidating Stored Responses
func (e *Engine) Invalidate(ctx context.Context, url string) error {
	entry, err := e.metadata.Get(ctx, url)
	if err == store.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if entry.Invalidated {
		return nil
	}
	entry.Invalidated = true
	return e.metadata.Set(ctx, url, entry)
}
