package httpcache

import (
	"context"
	"net/http"
	"time"

	"github.com/corecache/httpcache/internal/headerview"
	"github.com/corecache/httpcache/rfc9111"
	"github.com/corecache/httpcache/store"
)

// requestConditionalFields are the fields that mean "the caller is doing its
// own conditional request"; their presence always yields a miss (§4.7 step 2).
var requestConditionalFields = []string{
	"Range", "If-Match", "If-None-Match", "If-Modified-Since", "If-Unmodified-Since", "If-Range",
}

// Lookup answers a request against the cache. See Outcome for the three
// possible results.
func (e *Engine) Lookup(ctx context.Context, url, method string, requestHeaders http.Header) (Outcome, error) {
	reqView := headerViewOf(requestHeaders)
	reqCCRaw, _ := reqView.Get("Cache-Control")
	reqCC := rfc9111.ParseCacheControl(reqCCRaw)

	outcome := e.lookup(ctx, url, method, requestHeaders, reqView, reqCC)

	if outcome.Kind == Miss && reqCC.OnlyIfCached() {
		return Outcome{Kind: Response, Status: http.StatusGatewayTimeout, Headers: http.Header{}}, nil
	}
	return outcome, nil
}

func (e *Engine) lookup(ctx context.Context, url, method string, requestHeaders http.Header, reqView headerview.View, reqCC rfc9111.CacheControl) Outcome {
	logger := e.requestScopedLogger("lookup", url)

	// 1. method gate: only GET/HEAD may ever hit; any other unsafe method
	// invalidates the URL on the way to a miss.
	if method != http.MethodGet && method != http.MethodHead {
		if rfc9111.RequiresInvalidation(method) {
			if err := e.Invalidate(ctx, url); err != nil {
				e.config.OnError(err)
			}
		}
		logger.Trace().Str("status", string(statusMethodMiss)).Msg("method not cacheable")
		return Outcome{Kind: Miss}
	}

	// 2. the caller is doing its own conditional; don't get in the way.
	for _, name := range requestConditionalFields {
		if reqView.Has(name) {
			logger.Trace().Str("status", string(statusRequestMiss)).Msg("request carries its own conditional")
			return Outcome{Kind: Miss}
		}
	}

	// 3. fetch the entry.
	entry, err := e.metadata.Get(ctx, url)
	if err == store.ErrNotFound {
		logger.Trace().Str("status", string(statusURIMiss)).Msg("no stored entry")
		return Outcome{Kind: Miss}
	}
	if err != nil {
		e.config.OnError(err)
		return Outcome{Kind: Miss}
	}

	// 4. cross-method rule.
	if entry.Method == http.MethodHead && method == http.MethodGet {
		logger.Trace().Str("status", string(statusMethodMiss)).Msg("stored HEAD cannot satisfy GET")
		return Outcome{Kind: Miss}
	}

	// 5. vary match.
	if !rfc9111.MatchVary(entry.Vary, reqView.Get) {
		logger.Trace().Str("status", string(statusVaryMiss)).Msg("vary mismatch")
		return Outcome{Kind: Miss}
	}

	now := e.config.Clock.Now()
	currentAge := rfc9111.CurrentAge(entry.CorrectedInitialAge, entry.ResponseTime, now)
	stale := currentAge - entry.Lifetime
	isStale := stale >= 0

	forceRevalidate := entry.Invalidated ||
		reqCC.NoCache() ||
		entry.AlwaysRevalidate ||
		(isStale && entry.MustRevalidateWhenStale) ||
		(e.config.Shared && isStale && entry.SharedMustRevalidateWhenStale)

	maxStaleSeconds, maxStalePresent, maxStaleUnlimited := reqCC.MaxStale()
	acceptStale := maxStalePresent && (maxStaleUnlimited || time.Duration(maxStaleSeconds)*time.Second >= stale)

	minFreshSeconds, minFreshPresent := reqCC.MinFresh()
	minFreshDur := time.Duration(minFreshSeconds) * time.Second
	freshEnough := currentAge+minFreshDur < entry.Lifetime

	needsRevalidation := forceRevalidate || (minFreshPresent && freshEnough) || (isStale && !acceptStale)

	if needsRevalidation {
		revalHeaders := http.Header{}
		if !entry.LastModified.IsZero() {
			revalHeaders.Set("If-Modified-Since", rfc9111.FormatHTTPDate(entry.LastModified))
		}
		if entry.ETag != "" {
			revalHeaders.Set("If-None-Match", entry.ETag)
		}
		if len(revalHeaders) == 0 {
			logger.Trace().Str("status", string(statusURIMiss)).Msg("revalidation needed but no validator available")
			return Outcome{Kind: Miss}
		}
		logger.Trace().Str("status", string(statusRevalidate)).Msg("revalidation required")
		return Outcome{Kind: Revalidate, RevalidationHeaders: revalHeaders}
	}

	var body []byte
	if method == http.MethodGet {
		body, err = e.blobs.Get(ctx, store.BlobKey(entry.ID, url))
		if err == store.ErrNotFound {
			logger.Trace().Str("status", string(statusURIMiss)).Msg("metadata present but blob missing")
			return Outcome{Kind: Miss}
		}
		if err != nil {
			e.config.OnError(err)
			return Outcome{Kind: Miss}
		}
	}

	headers := entry.ResponseHeaders.Clone()
	headers.Set("Age", rfc9111.FormatAgeSeconds(currentAge))

	logger.Trace().Str("status", string(statusHit)).Msg("serving from cache")
	return Outcome{Kind: Response, Status: entry.Status, Headers: headers, Body: body}
}
