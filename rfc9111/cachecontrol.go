package rfc9111

import "strings"

// CacheControl is a parsed "Cache-Control" field: a mapping from directive
// name to argument, with valueless directives mapped to the empty string.
//
// §  5.2.  Cache-Control
// §
// §     The "Cache-Control" header field is used to list directives for
// §     caches along the request/response chain.  Cache directives are
// §     unidirectional, in that the presence of a directive in a request
// §     does not imply that the same directive is present or copied in the
// §     response.
// §
// §       Cache-Control   = #cache-directive
// §       cache-directive = token [ "=" ( token / quoted-string ) ]
type CacheControl struct {
	directives map[string]string
}

// Has reports whether the named directive is present, regardless of value.
func (c CacheControl) Has(name string) bool {
	_, ok := c.directives[name]
	return ok
}

// Get returns the directive's argument and whether it was present.
func (c CacheControl) Get(name string) (string, bool) {
	v, ok := c.directives[name]
	return v, ok
}

// DeltaSeconds returns the named directive's argument parsed as a strict
// delta-seconds value. A bare directive (no "=") is reported present with a
// zero duration; see §4.3.
func (c CacheControl) DeltaSeconds(name string) (seconds int64, present bool) {
	v, ok := c.directives[name]
	if !ok {
		return 0, false
	}
	if v == "" {
		return 0, true
	}
	n, ok := parseDeltaSeconds(v)
	return n, ok
}

// MaxAge returns the "max-age" response directive.
//
// §  5.2.2.1.  max-age
// §     The max-age response directive indicates that the response is to
// §     be considered stale after its age is greater than the specified
// §     number of seconds.
func (c CacheControl) MaxAge() (int64, bool) { return c.DeltaSeconds("max-age") }

// SMaxAge returns the "s-maxage" response directive.
//
// §  5.2.2.10.  s-maxage
// §     The s-maxage response directive indicates that, for a shared
// §     cache, the maximum age specified by this directive overrides the
// §     maximum age specified by either the max-age directive or the
// §     Expires header field.
func (c CacheControl) SMaxAge() (int64, bool) { return c.DeltaSeconds("s-maxage") }

// MaxStale returns the "max-stale" request directive. A present-but-bare
// directive means "accept staleness of any magnitude"; this is signalled by
// unlimited=true.
func (c CacheControl) MaxStale() (seconds int64, present bool, unlimited bool) {
	v, ok := c.directives["max-stale"]
	if !ok {
		return 0, false, false
	}
	if v == "" {
		return 0, true, true
	}
	n, ok := parseDeltaSeconds(v)
	if !ok {
		return 0, true, true
	}
	return n, true, false
}

// MinFresh returns the "min-fresh" request directive.
func (c CacheControl) MinFresh() (int64, bool) { return c.DeltaSeconds("min-fresh") }

func (c CacheControl) NoStore() bool         { return c.Has("no-store") }
func (c CacheControl) NoCache() bool         { return c.Has("no-cache") }
func (c CacheControl) Private() bool         { return c.Has("private") }
func (c CacheControl) Public() bool          { return c.Has("public") }
func (c CacheControl) MustRevalidate() bool  { return c.Has("must-revalidate") }
func (c CacheControl) ProxyRevalidate() bool { return c.Has("proxy-revalidate") }
func (c CacheControl) MustUnderstand() bool  { return c.Has("must-understand") }
func (c CacheControl) OnlyIfCached() bool    { return c.Has("only-if-cached") }

// ParseCacheControl parses a single combined Cache-Control field value.
// Multiple header occurrences should be joined with "," by the caller before
// this is invoked (the header normalizer does this for list-valued fields).
//
// A field containing a control character or a non-ASCII byte is treated as
// absent: this implementation's chosen interpretation of the two permitted
// variants in §4.2, applied consistently everywhere.
//
// A directive name that repeats collapses the entire result to
// {"no-store": ""} — the safe reading of an ambiguous field.
func ParseCacheControl(raw string) CacheControl {
	if raw == "" || hasControlOrNonASCII(raw) {
		return CacheControl{directives: map[string]string{}}
	}

	directives := make(map[string]string)
	duplicate := false

	i := 0
	n := len(raw)
	for i < n {
		for i < n && (raw[i] == ' ' || raw[i] == ',' || raw[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}

		nameStart := i
		for i < n && raw[i] != '=' && raw[i] != ',' {
			i++
		}
		name := strings.ToLower(strings.TrimSpace(raw[nameStart:i]))
		if name == "" {
			if i < n {
				i++
			}
			continue
		}

		var value string
		if i < n && raw[i] == '=' {
			i++
			if i < n && raw[i] == '"' {
				var sb strings.Builder
				i++
				for i < n && raw[i] != '"' {
					if raw[i] == '\\' && i+1 < n {
						i++
					}
					sb.WriteByte(raw[i])
					i++
				}
				if i < n {
					i++ // closing quote
				}
				// skip to next delimiter; well-formed fields have nothing here
				for i < n && raw[i] != ',' {
					i++
				}
				value = sb.String()
			} else {
				valueStart := i
				for i < n && raw[i] != ',' {
					i++
				}
				value = strings.TrimSpace(raw[valueStart:i])
			}
		}

		if _, exists := directives[name]; exists {
			duplicate = true
		}
		directives[name] = value

		if i < n && raw[i] == ',' {
			i++
		}
	}

	if duplicate {
		return CacheControl{directives: map[string]string{"no-store": ""}}
	}
	return CacheControl{directives: directives}
}

func hasControlOrNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b == 0x7f || b > 0x7f {
			return true
		}
	}
	return false
}
