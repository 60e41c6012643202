// Package httpcache is an RFC 9111 client-side cache decision engine. It
// decides whether and how to store an observed HTTP response, and whether a
// later request can be satisfied from that storage, by revalidation, or not
// at all — without performing any I/O against an origin server itself.
package httpcache

import (
	"io"
	"net/http"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/corecache/httpcache/internal/headerview"
)

// Exchange bundles the observed request/response pair handed to OnResponse.
type Exchange struct {
	URL    string
	Method string
	Status int

	RequestHeaders  http.Header
	ResponseHeaders http.Header

	RequestTime  time.Time
	ResponseTime time.Time

	// Body is the response body, or nil for a bodiless response (HEAD,
	// 204, 304, or simply none available).
	Body io.Reader
}

// Engine is the decision engine. It holds no origin transport and performs
// no network I/O; it only reads and writes the two stores it's given.
type Engine struct {
	metadata MetadataStore
	blobs    BlobStore
	config   Config
}

// New constructs an Engine against the given stores. Unset Config fields
// take their defaults as Config.WithDefaults applies them; Shared is used as
// given.
func New(metadata MetadataStore, blobs BlobStore, config Config) *Engine {
	return &Engine{
		metadata: metadata,
		blobs:    blobs,
		config:   config.WithDefaults(),
	}
}

// requestScopedLogger attaches a short correlation id to every log line
// produced while servicing one Lookup or OnResponse call, the usual
// zerolog-adjacent pairing for tying multi-step decisions back together in
// aggregated log output.
func (e *Engine) requestScopedLogger(op, url string) zerolog.Logger {
	id := xid.New().String()
	return e.config.Logger.With().Str("op", op).Str("url", url).Str("corr_id", id).Logger()
}

func headerViewOf(h http.Header) headerview.View {
	return headerview.FromHTTPHeader(h)
}
