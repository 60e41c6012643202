package rfc9111

import "strings"

// VaryNames parses a "Vary" field value into the list of named request
// header fields (or ["*"] for the wildcard).
//
// §  4.1.  Calculating Cache Keys with the Vary Header Field
func VaryNames(varyHeader string) []string {
	return splitCommaList(varyHeader)
}

// HeaderLookup resolves a request header by case-insensitive name.
type HeaderLookup func(name string) (string, bool)

// MatchVary reports whether a lookup request satisfies the vary map
// recorded at storage time: every named header must match exactly,
// including both being absent.
func MatchVary(stored map[string]string, lookup HeaderLookup) bool {
	for name, storedValue := range stored {
		value, ok := lookup(name)
		if !ok {
			if storedValue != "" {
				return false
			}
			continue
		}
		if value != storedValue {
			return false
		}
	}
	return true
}

// BuildVaryMap captures the request's values for each header named in the
// response's Vary field, for storage alongside the entry. A Vary containing
// "*" must be rejected by the caller before this is invoked (I2); an empty
// map is returned in that case as a defensive no-op.
func BuildVaryMap(varyNames []string, lookup HeaderLookup) map[string]string {
	out := make(map[string]string, len(varyNames))
	for _, name := range varyNames {
		if name == "*" {
			return map[string]string{}
		}
		value, _ := lookup(name)
		out[strings.ToLower(name)] = value
	}
	return out
}
