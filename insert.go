package httpcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/corecache/httpcache/rfc9111"
	"github.com/corecache/httpcache/store"
)

// consumptionChecker lets a caller hand OnResponse a body reader that knows
// whether it has already been drained elsewhere. The engine refuses such a
// source outright rather than silently treat it as empty.
type consumptionChecker interface {
	AlreadyConsumed() bool
}

// OnResponse ingests an observed response. A nil return does not imply the
// response was stored — the engine may legitimately decide not to cache it.
// Storage failures are reported through Config.OnError and not returned. A
// body that was already consumed is both reported through Config.OnError and
// returned as ErrBodyAlreadyConsumed; a body that fails while being read is
// returned as an error without calling Config.OnError.
func (e *Engine) OnResponse(ctx context.Context, ex Exchange) error {
	logger := e.requestScopedLogger("on_response", ex.URL)

	if checker, ok := ex.Body.(consumptionChecker); ok && checker.AlreadyConsumed() {
		e.config.OnError(ErrBodyAlreadyConsumed)
		return ErrBodyAlreadyConsumed
	}

	reqView := headerViewOf(ex.RequestHeaders)
	resView := headerViewOf(ex.ResponseHeaders)

	// 2. no partial content.
	if resView.Has("Content-Range") {
		logger.Trace().Msg("refusing partial content")
		return nil
	}

	reqCCRaw, _ := reqView.Get("Cache-Control")
	resCCRaw, _ := resView.Get("Cache-Control")
	reqCC := rfc9111.ParseCacheControl(reqCCRaw)
	resCC := rfc9111.ParseCacheControl(resCCRaw)

	_, hasAuthorization := reqView.Get("Authorization")
	_, hasExpires := resView.Get("Expires")
	varyRaw, _ := resView.Get("Vary")
	varyNames := rfc9111.VaryNames(varyRaw)

	// 3. storability.
	if !rfc9111.CanStore(rfc9111.CanStoreInputs{
		Shared:               e.config.Shared,
		Method:               ex.Method,
		Status:               ex.Status,
		HasAuthorization:     hasAuthorization,
		ResponseCacheControl: resCC,
		HasExpires:           hasExpires,
		Vary:                 varyNames,
		ForceMustUnderstand:  e.config.ForceMustUnderstand,
	}) {
		logger.Trace().Msg("not storable")
		return nil
	}

	// 4. lifetime.
	expiresRaw, _ := resView.Get("Expires")
	lifetime, storable := rfc9111.Lifetime(rfc9111.LifetimeInputs{
		Shared:               e.config.Shared,
		ExpiresHeader:        expiresRaw,
		RequestCacheControl:  reqCC,
		ResponseCacheControl: resCC,
		HeuristicLifetime:    e.config.HeuristicLifetime,
		Now:                  e.config.Clock.Now(),
	})
	if !storable {
		logger.Trace().Msg("no usable freshness lifetime")
		return nil
	}

	// 5. corrected initial age.
	ageRaw, _ := resView.Get("Age")
	dateRaw, _ := resView.Get("Date")
	correctedInitialAge := rfc9111.CorrectedInitialAge(rfc9111.AgeInputs{
		AgeHeader:    ageRaw,
		DateHeader:   dateRaw,
		RequestTime:  ex.RequestTime,
		ResponseTime: ex.ResponseTime,
		Now:          e.config.Clock.Now(),
	})

	// 6. normalize Last-Modified.
	lastModifiedRaw, _ := resView.Get("Last-Modified")
	lastModified, _ := rfc9111.ParseHTTPDate(lastModifiedRaw)

	incoming := validatorSnapshot(resView, lastModified)

	// 7. fetch any prior entry.
	prior, err := e.metadata.Get(ctx, ex.URL)
	hasPrior := err == nil
	if err != nil && err != store.ErrNotFound {
		e.config.OnError(err)
		return nil
	}

	// 8. freshening check, applied uniformly to the 304 path and to a
	// matching-validator non-304 GET: the engine requires an exact
	// validator match to refresh an entry in place, stricter than the RFC.
	if hasPrior && (ex.Status == http.StatusNotModified || ex.Method == http.MethodGet) {
		priorSnapshot := rfc9111.Validators{
			ETag:            prior.ETag,
			LastModified:    lastModifiedString(prior.LastModified),
			ContentLength:   prior.ContentLength,
			ContentType:     prior.ContentType,
			ContentLanguage: prior.ContentLanguage,
			ContentEncoding: prior.ContentEncoding,
		}
		if !priorSnapshot.MatchesExactly(incoming) {
			if !prior.Invalidated {
				prior.Invalidated = true
				if err := e.metadata.Set(ctx, ex.URL, prior); err != nil {
					e.config.OnError(err)
					return nil
				}
			}
			logger.Trace().Msg("validators changed; invalidated prior entry")
			return nil
		}
	}

	connectionRaw, _ := reqView.Get("Connection")
	strippedHeaders := rfc9111.StripHopByHop(ex.ResponseHeaders, connectionRaw)

	// 9. build the new record.
	id := uuid.New().String()
	method := ex.Method
	status := ex.Status
	if hasPrior {
		id = prior.ID
		method = prior.Method
		status = prior.Status
	}

	varyMap := rfc9111.BuildVaryMap(varyNames, reqView.Get)

	newEntry := store.Entry{
		ID:                            id,
		ResponseTime:                  ex.ResponseTime,
		LastModified:                  lastModified,
		ETag:                          incoming.ETag,
		Vary:                          varyMap,
		Method:                        method,
		Status:                        status,
		CorrectedInitialAge:           correctedInitialAge,
		Lifetime:                      lifetime,
		MustRevalidateWhenStale:       resCC.MustRevalidate(),
		SharedMustRevalidateWhenStale: resCC.ProxyRevalidate(),
		AlwaysRevalidate:              resCC.NoCache(),
		ResponseHeaders:               strippedHeaders,
		Invalidated:                   false,
		ContentLength:                 incoming.ContentLength,
		ContentType:                   incoming.ContentType,
		ContentLanguage:               incoming.ContentLanguage,
		ContentEncoding:               incoming.ContentEncoding,
	}

	// 10. drain the body, unless this is a no-content exchange.
	noContent := ex.Body == nil || ex.Method == http.MethodHead || ex.Status == http.StatusNoContent || ex.Status == http.StatusNotModified
	var body []byte
	if !noContent {
		body, err = io.ReadAll(ex.Body)
		if err != nil {
			logger.Trace().Err(err).Msg("body drain failed; no partial entry written")
			return fmt.Errorf("httpcache: drain response body: %w", err)
		}
	}

	// 11. atomic write with best-effort rollback.
	blobKey := store.BlobKey(id, ex.URL)
	if err := e.metadata.Set(ctx, ex.URL, newEntry); err != nil {
		e.rollback(ctx, ex.URL, blobKey)
		e.config.OnError(err)
		return nil
	}
	if ex.Status != http.StatusNotModified && ex.Method != http.MethodHead {
		if err := e.blobs.Set(ctx, blobKey, body); err != nil {
			e.rollback(ctx, ex.URL, blobKey)
			e.config.OnError(err)
			return nil
		}
	}

	logger.Trace().Str("id", id).Msg("stored")
	return nil
}

func (e *Engine) rollback(ctx context.Context, url, blobKey string) {
	_ = e.metadata.Delete(ctx, url)
	_ = e.blobs.Delete(ctx, blobKey)
}

func lastModifiedString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return rfc9111.FormatHTTPDate(t)
}

func validatorSnapshot(view interface {
	Get(name string) (string, bool)
}, lastModified time.Time) rfc9111.Validators {
	etag, _ := view.Get("ETag")
	contentLength, _ := view.Get("Content-Length")
	contentType, _ := view.Get("Content-Type")
	contentLanguage, _ := view.Get("Content-Language")
	contentEncoding, _ := view.Get("Content-Encoding")
	return rfc9111.Validators{
		ETag:            etag,
		LastModified:    lastModifiedString(lastModified),
		ContentLength:   contentLength,
		ContentType:     contentType,
		ContentLanguage: contentLanguage,
		ContentEncoding: contentEncoding,
	}
}
