package middleware

import (
	"log/slog"

	"github.com/ghettovoice/conneg/internal/log"
	"github.com/ghettovoice/conneg/metrics"
)

// Options configure the middleware and [Negotiators].
type Options struct {
	// Logger is the logger used to report parsed headers and negotiation misses.
	// If nil, the noop logger is used.
	Logger *slog.Logger
	// Metrics records negotiation outcomes.
	// If nil, nothing is recorded.
	Metrics *metrics.Metrics
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

func (o *Options) metrics() *metrics.Metrics {
	if o == nil {
		return nil
	}
	return o.Metrics
}
