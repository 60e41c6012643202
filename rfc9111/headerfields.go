package rfc9111

import (
	"net/http"
	"strings"
)

// hopByHopFields are always stripped before a response is stored, per the
// general HTTP requirement that connection-scoped fields never survive past
// the connection they arrived on.
var hopByHopFields = map[string]bool{
	"connection":                true,
	"keep-alive":                true,
	"proxy-authenticate":        true,
	"proxy-authentication-info": true,
}

// StripHopByHop returns a copy of headers with every hop-by-hop field
// removed, plus every field named in the request's "Connection" field (§I5).
func StripHopByHop(headers http.Header, requestConnection string) http.Header {
	out := make(http.Header, len(headers))
	named := connectionNamedFields(requestConnection)
	for name, values := range headers {
		lower := strings.ToLower(name)
		if hopByHopFields[lower] || named[lower] {
			continue
		}
		out[name] = append([]string(nil), values...)
	}
	return out
}

func connectionNamedFields(connection string) map[string]bool {
	named := make(map[string]bool)
	for _, name := range splitCommaList(connection) {
		named[strings.ToLower(name)] = true
	}
	return named
}

func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
