package rfc9111

import "strings"

// RequiresInvalidation reports whether observing the given request method
// against a URL must invalidate any stored entry for that URL.
//
// §  4.4.  Invalidating Stored Responses
// §
// §     Because unsafe request methods [...] invalidate cached responses
// §     with the same URI.
//
// GET, HEAD, OPTIONS, and TRACE never invalidate; every other method
// (including one this implementation does not recognize) does.
func RequiresInvalidation(method string) bool {
	switch strings.ToUpper(method) {
	case "GET", "HEAD", "OPTIONS", "TRACE":
		return false
	default:
		return true
	}
}

// IsCacheableMethod reports whether a lookup may be attempted for the given
// method at all.
func IsCacheableMethod(method string) bool {
	switch strings.ToUpper(method) {
	case "GET", "HEAD":
		return true
	default:
		return false
	}
}
