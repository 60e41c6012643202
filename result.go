package httpcache

import "net/http"

// OutcomeKind enumerates Lookup's three possible outcomes.
type OutcomeKind int

const (
	// Miss means the cache has nothing usable to offer; the caller should
	// perform a normal (unconditional) upstream request.
	Miss OutcomeKind = iota
	// Response means the cache can satisfy the request directly.
	Response
	// Revalidate means the caller should issue a conditional upstream
	// request using the headers attached to the outcome.
	Revalidate
)

func (k OutcomeKind) String() string {
	switch k {
	case Miss:
		return "miss"
	case Response:
		return "response"
	case Revalidate:
		return "revalidate"
	default:
		return "unknown"
	}
}

// Outcome is the result of a Lookup call.
type Outcome struct {
	Kind OutcomeKind

	// Status and Headers are set for Response (and for the synthesized 504
	// on only-if-cached); Headers always includes a recomputed "Age" for a
	// genuine cache hit.
	Status  int
	Headers http.Header
	Body    []byte

	// RevalidationHeaders carries If-None-Match / If-Modified-Since for a
	// Revalidate outcome.
	RevalidationHeaders http.Header
}
