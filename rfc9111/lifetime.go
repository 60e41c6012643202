package rfc9111

import "time"

// LifetimeInputs bundles the values needed to compute freshness lifetime.
type LifetimeInputs struct {
	Shared               bool
	ExpiresHeader        string
	RequestCacheControl  CacheControl
	ResponseCacheControl CacheControl
	HeuristicLifetime    time.Duration
	Now                  time.Time
}

// §  4.2.1.  Calculating Freshness Lifetime
// §
// §     A cache can calculate the freshness lifetime (denoted as
// §     freshness_lifetime) of a response by evaluating the following
// §     rules and using the first match:
// §
// §     *  If the cache is shared and the s-maxage response directive is
// §        present, use its value, or
// §     *  If the max-age response directive is present, use its value, or
// §     *  If the Expires response header field is present, use its value
// §        minus the value of the Date response header field, or
// §     *  Otherwise, no explicit expiration time is present in the
// §        response. A heuristic freshness lifetime might be applicable.
//
// Lifetime returns the computed lifetime and true, or false when the
// response must not be stored at all (no-store on either side, or a shared
// cache facing "private", or an Expires value that fails to parse).
func Lifetime(in LifetimeInputs) (time.Duration, bool) {
	if in.RequestCacheControl.NoStore() || in.ResponseCacheControl.NoStore() {
		return 0, false
	}
	if in.Shared && in.ResponseCacheControl.Private() {
		return 0, false
	}
	if in.Shared {
		if seconds, ok := in.ResponseCacheControl.SMaxAge(); ok {
			return time.Duration(seconds) * time.Second, true
		}
	}
	if seconds, ok := in.ResponseCacheControl.MaxAge(); ok {
		return time.Duration(seconds) * time.Second, true
	}
	if in.ExpiresHeader == "" {
		return in.HeuristicLifetime, true
	}
	if expires, ok := ParseHTTPDate(in.ExpiresHeader); ok {
		lifetime := expires.Sub(in.Now)
		if lifetime < 0 {
			lifetime = 0
		}
		return lifetime, true
	}
	return 0, false
}
