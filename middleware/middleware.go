package middleware

import (
	"log/slog"
	"net/http"
)

// New returns a middleware that attaches [Negotiators] built from the request headers
// to the request context before calling the next handler.
// Options are optional, default options are used if nil (see [Options]).
func New(opts *Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Handler(next, opts)
	}
}

// Handler wraps next with the negotiation middleware.
func Handler(next http.Handler, opts *Options) http.Handler {
	logger := opts.log()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := NewNegotiators(r.Context(), r.Header, opts)
		logger.LogAttrs(r.Context(), slog.LevelDebug, "request preferences parsed",
			slog.Any("request", r),
			slog.Any("negotiators", n),
		)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), n)))
	})
}
