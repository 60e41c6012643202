package rfc9111

// recognizedStatusCodes is the set of status codes a cache that implements
// must-understand is considered to understand for caching purposes.
var recognizedStatusCodes = map[int]bool{
	200: true, 201: true, 202: true, 203: true, 204: true, 205: true,
	300: true, 301: true, 302: true, 303: true, 304: true, 307: true, 308: true,
	400: true, 401: true, 403: true, 404: true, 405: true, 406: true, 407: true,
	408: true, 410: true, 411: true, 412: true, 413: true, 414: true, 415: true,
	417: true, 421: true, 426: true, 451: true,
	500: true, 501: true, 502: true, 503: true, 504: true, 505: true, 506: true,
}

// heuristicallyCacheableStatusCodes is the set of status codes for which
// caching is permitted even without any explicit freshness information.
//
// §  4.2.2.  Calculating Heuristic Freshness
var heuristicallyCacheableStatusCodes = map[int]bool{
	200: true, 203: true, 204: true, 300: true, 301: true,
	308: true, 404: true, 405: true, 410: true, 414: true, 451: true, 501: true,
}

// CanStoreInputs bundles the values needed to decide storability.
type CanStoreInputs struct {
	Shared               bool
	Method               string
	Status               int
	HasAuthorization     bool
	ResponseCacheControl CacheControl
	HasExpires           bool
	Vary                 []string
	ForceMustUnderstand  bool
}

// CanStore implements the storability predicate.
//
// §  3.  Storing Responses in Caches
// §
// §     A cache MUST NOT store a response to any request, unless the
// §     request method is understood by the cache and defined as being
// §     cacheable, and the response status code is final [...]
func CanStore(in CanStoreInputs) bool {
	if in.Status < 200 || in.Status > 599 {
		return false
	}
	if in.Method != "GET" && in.Method != "HEAD" {
		return false
	}
	if containsWildcard(in.Vary) {
		return false
	}
	if in.ResponseCacheControl.NoStore() {
		return false
	}
	if in.Shared && in.ResponseCacheControl.Private() {
		return false
	}
	if in.Shared && in.HasAuthorization {
		_, hasSMaxAge := in.ResponseCacheControl.SMaxAge()
		if !in.ResponseCacheControl.MustRevalidate() && !in.ResponseCacheControl.Public() && !hasSMaxAge {
			return false
		}
	}
	if in.ForceMustUnderstand || in.ResponseCacheControl.MustUnderstand() {
		if !recognizedStatusCodes[in.Status] {
			return false
		}
	}
	return hasPositiveCacheabilitySignal(in)
}

func hasPositiveCacheabilitySignal(in CanStoreInputs) bool {
	if in.ResponseCacheControl.Public() {
		return true
	}
	if !in.Shared && in.ResponseCacheControl.Private() {
		return true
	}
	if in.HasExpires {
		return true
	}
	if _, ok := in.ResponseCacheControl.MaxAge(); ok {
		return true
	}
	if in.Shared {
		if _, ok := in.ResponseCacheControl.SMaxAge(); ok {
			return true
		}
	}
	return heuristicallyCacheableStatusCodes[in.Status]
}

func containsWildcard(names []string) bool {
	for _, n := range names {
		if n == "*" {
			return true
		}
	}
	return false
}
