package httpcache

// cacheStatus labels a Lookup decision for structured logging, grounded on
// the forward-reason taxonomy of RFC 9211's Cache-Status field without
// emitting that header: this engine has no transport of its own to attach
// it to.
type cacheStatus string

const (
	statusHit         cacheStatus = "hit"
	statusRevalidate  cacheStatus = "fwd;fwd-reason=stale"
	statusURIMiss     cacheStatus = "fwd;fwd-reason=uri-miss"
	statusVaryMiss    cacheStatus = "fwd;fwd-reason=vary-miss"
	statusMethodMiss  cacheStatus = "fwd;fwd-reason=method"
	statusRequestMiss cacheStatus = "fwd;fwd-reason=request"
)
