// Command httpcacheengine is a small demo/driver binary: a reverse proxy
// that answers every request out of the engine first, falling back to a
// real origin on a miss or revalidation, with a tiny chi-routed debug
// surface alongside it for poking at stored entries by hand.
package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/corecache/httpcache"
	"github.com/corecache/httpcache/internal/cliconfig"
	"github.com/corecache/httpcache/store"
	"github.com/corecache/httpcache/store/sqlitestore"
	"github.com/corecache/httpcache/streamtee"
)

func main() {
	cfg, err := cliconfig.Load(os.Getenv("HTTPCACHEENGINE_CONFIG"), os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	logLevel := zerolog.InfoLevel
	if cfg.Trace {
		logLevel = zerolog.TraceLevel
	}
	log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stdout})

	if cfg.Origin == "" {
		log.Fatal().Msg("no origin configured; set -origin or the config file's 'origin' key")
	}
	originURL, err := url.Parse(cfg.Origin)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing origin URL")
	}

	dbFile := cfg.DBFile
	if dbFile == "memory" {
		dbFile = ""
	}
	metadata, blobs, err := sqlitestore.Open(dbFile)
	if err != nil {
		log.Fatal().Err(err).Msg("opening sqlite store")
	}

	engine := httpcache.New(metadata, blobs, httpcache.Config{
		Shared:            cfg.Shared,
		HeuristicLifetime: cfg.HeuristicLifetime,
		Logger:            &log.Logger,
	})

	proxy := &proxyHandler{
		engine:       engine,
		origin:       originURL,
		client:       &http.Client{},
		maxTeeBuffer: 64,
	}

	router := chi.NewRouter()
	router.Get("/debug/entry/{url}", debugEntryHandler(metadata))
	router.Post("/debug/invalidate", debugInvalidateHandler(engine))
	router.NotFound(proxy.ServeHTTP)

	log.Info().Str("addr", cfg.Addr).Str("origin", originURL.String()).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// proxyHandler answers a request from the cache engine, forwarding to the
// configured origin on a miss or revalidation. It stays a plain
// http.Handler, matching the teacher's core.AlwaysCache.ServeHTTP — chi is
// only layered in front of it for the debug routes.
type proxyHandler struct {
	engine       *httpcache.Engine
	origin       *url.URL
	client       *http.Client
	maxTeeBuffer int
}

func (p *proxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	effectiveURL := r.URL.String()

	outcome, err := p.engine.Lookup(ctx, effectiveURL, r.Method, r.Header)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch outcome.Kind {
	case httpcache.Response:
		writeOutcome(w, outcome)
	case httpcache.Revalidate:
		p.forward(w, r, outcome.RevalidationHeaders)
	default:
		p.forward(w, r, nil)
	}
}

func writeOutcome(w http.ResponseWriter, outcome httpcache.Outcome) {
	for name, values := range outcome.Headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(outcome.Status)
	if len(outcome.Body) > 0 {
		w.Write(outcome.Body)
	}
}

// forward proxies the request to the origin, streaming the response to the
// client while the engine captures it from a tee'd copy in the background,
// so a slow cache write never holds up the client's bytes.
func (p *proxyHandler) forward(w http.ResponseWriter, r *http.Request, extraHeaders http.Header) {
	req := r.Clone(r.Context())
	req.URL.Scheme = p.origin.Scheme
	req.URL.Host = p.origin.Host
	req.RequestURI = ""
	for name, values := range extraHeaders {
		req.Header[name] = values
	}

	requestTime := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	responseTime := time.Now()

	fast, slow := streamtee.New(r.Context(), resp.Body, p.maxTeeBuffer)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := p.engine.OnResponse(r.Context(), httpcache.Exchange{
			URL:             r.URL.String(),
			Method:          r.Method,
			Status:          resp.StatusCode,
			RequestHeaders:  req.Header,
			ResponseHeaders: resp.Header,
			RequestTime:     requestTime,
			ResponseTime:    responseTime,
			Body:            slow,
		})
		if err != nil {
			log.Error().Err(err).Str("url", r.URL.String()).Msg("cache insertion failed")
		}
	}()

	for name, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, fast)
	wg.Wait()
}

func debugEntryHandler(metadata *sqlitestore.Metadata) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryURL := chi.URLParam(r, "url")
		entry, err := metadata.Get(r.Context(), entryURL)
		if err == store.ErrNotFound {
			http.Error(w, "no entry for that URL", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			log.Error().Err(err).Msg("encoding debug entry response")
		}
	}
}

func debugInvalidateHandler(engine *httpcache.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryURL := r.FormValue("url")
		if entryURL == "" {
			http.Error(w, "missing url form value", http.StatusBadRequest)
			return
		}
		if err := engine.Invalidate(r.Context(), entryURL); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
