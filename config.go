package httpcache

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the engine's recognized options.
type Config struct {
	// Shared applies shared-cache constraints: "private", "s-maxage", and
	// Authorization gating. DefaultConfig sets it to true; WithDefaults
	// leaves it as given, so a zero Config describes a non-shared cache.
	Shared bool
	// ForceMustUnderstand treats every response as if it carried
	// "must-understand".
	ForceMustUnderstand bool
	// HeuristicLifetime is the lifetime assumed when a response is
	// cacheable but provides no explicit freshness. Default 60s.
	HeuristicLifetime time.Duration
	// MaxTeeBuffer is a cap, in chunks, on a stream tee's slow-side backlog
	// before it is force-cancelled (see streamtee.New). Default 64. The
	// engine builds no tee itself and does not read this field.
	MaxTeeBuffer int
	// Clock is the time source used throughout the engine. Default: the
	// real wall clock.
	Clock Clock
	// OnError is invoked for storage failures, which the engine does not
	// otherwise propagate, and for a body that was already consumed. A body
	// that fails while being read is not passed to it. Default: log the
	// error at Error level.
	OnError func(error)
	// Logger is the contextual logger used for policy decisions and
	// errors. Default: the zerolog global logger. A nil Logger uses the
	// default.
	Logger *zerolog.Logger
}

// WithDefaults returns a copy of c with every unset field except Shared
// replaced by its default. A bool cannot tell "unset" from false, so Shared
// is left as given.
func (c Config) WithDefaults() Config {
	if c.HeuristicLifetime == 0 {
		c.HeuristicLifetime = 60 * time.Second
	}
	if c.MaxTeeBuffer == 0 {
		c.MaxTeeBuffer = 64
	}
	if c.Clock == nil {
		c.Clock = realClock{}
	}
	if c.Logger == nil {
		c.Logger = &log.Logger
	}
	if c.OnError == nil {
		logger := c.Logger
		c.OnError = func(err error) {
			logger.Error().Err(err).Msg("httpcache: storage error")
		}
	}
	return c
}

// DefaultConfig returns the recognized-option defaults: Shared=true,
// HeuristicLifetime=60s, MaxTeeBuffer=64.
func DefaultConfig() Config {
	return Config{Shared: true}.WithDefaults()
}
