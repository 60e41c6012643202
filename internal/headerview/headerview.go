// Package headerview normalizes the two header shapes the engine accepts —
// an http.Header lookup-style view and a flat name-to-value mapping — into a
// single case-insensitive, list-joining view.
package headerview

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// View is a case-insensitive, normalized read of a header set.
type View interface {
	// Has reports whether name is present, case-insensitively.
	Has(name string) bool
	// Get returns the normalized value for name and whether it was present.
	// List values are joined on ",", as the RFC permits.
	Get(name string) (string, bool)
	// Keys returns every present header name, lower-cased and deduplicated.
	Keys() []string
}

type header http.Header

// FromHTTPHeader wraps an http.Header behind the normalized View interface.
func FromHTTPHeader(h http.Header) View {
	if h == nil {
		h = http.Header{}
	}
	return header(h)
}

func (h header) Has(name string) bool {
	return len(http.Header(h).Values(name)) > 0
}

func (h header) Get(name string) (string, bool) {
	values := http.Header(h).Values(name)
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ","), true
}

func (h header) Keys() []string {
	keys := make([]string, 0, len(h))
	for name := range h {
		keys = append(keys, strings.ToLower(name))
	}
	sort.Strings(keys)
	return keys
}

// mapView wraps a flat mapping of name to scalar, list, or absent value.
type mapView map[string]string

// FromMap wraps a mapping of header name to value behind the normalized View
// interface. Accepted value types per entry are string, []string, and any
// other value is stringified with fmt.Sprint; a nil value is treated as
// absent (omitted), matching the source's "undefined entries omitted" rule.
func FromMap(m map[string]any) View {
	out := make(mapView, len(m))
	for name, value := range m {
		if value == nil {
			continue
		}
		key := strings.ToLower(name)
		switch v := value.(type) {
		case string:
			out[key] = v
		case []string:
			out[key] = strings.Join(v, ",")
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}

func (m mapView) Has(name string) bool {
	_, ok := m[strings.ToLower(name)]
	return ok
}

func (m mapView) Get(name string) (string, bool) {
	v, ok := m[strings.ToLower(name)]
	return v, ok
}

func (m mapView) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
