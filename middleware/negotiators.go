package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ghettovoice/conneg/header"
	"github.com/ghettovoice/conneg/internal/log"
	"github.com/ghettovoice/conneg/metrics"
	"github.com/ghettovoice/conneg/negotiate"
)

// Negotiators holds one negotiator per Accept-* header of a request.
type Negotiators struct {
	MediaTypes *negotiate.Negotiator[header.MediaType]
	Charsets   *negotiate.Negotiator[header.Charset]
	Encodings  *negotiate.Negotiator[header.Encoding]
	Languages  *negotiate.Negotiator[header.Language]

	ctx     context.Context
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewNegotiators parses the Accept-* headers of h.
// Repeated header fields are combined as a comma separated list.
// The context is the request context, it is passed to the logger on every negotiation.
// Options are optional, default options are used if nil (see [Options]).
func NewNegotiators(ctx context.Context, h http.Header, opts *Options) *Negotiators {
	if ctx == nil {
		ctx = context.Background()
	}
	n := &Negotiators{
		ctx:        ctx,
		MediaTypes: negotiate.MediaTypes(headerValue(h, header.Accept(nil).CanonicName())),
		Charsets:   negotiate.Charsets(headerValue(h, header.AcceptCharset(nil).CanonicName())),
		Encodings:  negotiate.Encodings(headerValue(h, header.AcceptEncoding(nil).CanonicName())),
		Languages:  negotiate.Languages(headerValue(h, header.AcceptLanguage(nil).CanonicName())),
		log:        opts.log(),
		metrics:    opts.metrics(),
	}

	n.metrics.ObserveHeader(metrics.KindMediaType, n.MediaTypes.Len())
	n.metrics.ObserveHeader(metrics.KindCharset, n.Charsets.Len())
	n.metrics.ObserveHeader(metrics.KindEncoding, n.Encodings.Len())
	n.metrics.ObserveHeader(metrics.KindLanguage, n.Languages.Len())
	return n
}

func headerValue(h http.Header, name header.Name) string {
	return strings.Join(h.Values(string(name)), ",")
}

// ContentType selects a media type from supported and sets the Content-Type response header.
func (n *Negotiators) ContentType(w http.ResponseWriter, supported ...string) (negotiate.Match[header.MediaType], bool) {
	m, ok := n.MediaTypes.Negotiate(supported...)
	n.observe(n.ctx, metrics.KindMediaType, n.MediaTypes, supported, ok)
	if ok {
		setNegotiated(w, "Content-Type", header.Accept(nil).CanonicName(), m.Supported)
	}
	return m, ok
}

// ContentEncoding selects a content coding from supported and sets the Content-Encoding response header.
// Selecting "identity" leaves Content-Encoding unset.
func (n *Negotiators) ContentEncoding(w http.ResponseWriter, supported ...string) (negotiate.Match[header.Encoding], bool) {
	m, ok := n.Encodings.Negotiate(supported...)
	n.observe(n.ctx, metrics.KindEncoding, n.Encodings, supported, ok)
	if ok {
		val := m.Supported
		if strings.EqualFold(strings.TrimSpace(val), header.Identity) {
			val = ""
		}
		setNegotiated(w, "Content-Encoding", header.AcceptEncoding(nil).CanonicName(), val)
	}
	return m, ok
}

// ContentLanguage selects a language from supported and sets the Content-Language response header.
func (n *Negotiators) ContentLanguage(w http.ResponseWriter, supported ...string) (negotiate.Match[header.Language], bool) {
	m, ok := n.Languages.Negotiate(supported...)
	n.observe(n.ctx, metrics.KindLanguage, n.Languages, supported, ok)
	if ok {
		setNegotiated(w, "Content-Language", header.AcceptLanguage(nil).CanonicName(), m.Supported)
	}
	return m, ok
}

// Charset selects a charset from supported.
// No response header is set, the charset usually goes to the Content-Type parameters.
func (n *Negotiators) Charset(supported ...string) (negotiate.Match[header.Charset], bool) {
	m, ok := n.Charsets.Negotiate(supported...)
	n.observe(n.ctx, metrics.KindCharset, n.Charsets, supported, ok)
	return m, ok
}

func (n *Negotiators) observe(
	ctx context.Context,
	kind string,
	prefs interface{ String() string },
	supported []string,
	ok bool,
) {
	n.metrics.ObserveNegotiation(kind, ok)
	if !ok && n.log != nil {
		n.log.LogAttrs(ctx, slog.LevelInfo, "not acceptable",
			slog.String("kind", kind),
			slog.Any("preferences", log.CalcValue(func() any { return prefs.String() })),
			slog.Any("supported", log.StringValue(strings.Join(supported, ", "))),
		)
	}
}

// setNegotiated sets the response header and records the request header it depends on in Vary.
// An empty value only updates Vary.
func setNegotiated(w http.ResponseWriter, name string, vary header.Name, val string) {
	h := w.Header()
	if val = strings.TrimSpace(val); val != "" {
		h.Set(name, val)
	}
	addVary(h, string(vary))
}

func addVary(h http.Header, name string) {
	for _, v := range h.Values("Vary") {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f == "*" || strings.EqualFold(f, name) {
				return
			}
		}
	}
	h.Add("Vary", name)
}

// NotAcceptable replies with 406 Not Acceptable.
func NotAcceptable(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
}

// LogValue implements [slog.LogValuer].
func (n *Negotiators) LogValue() slog.Value {
	if n == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("accept", n.MediaTypes.String()),
		slog.String("accept_charset", n.Charsets.String()),
		slog.String("accept_encoding", n.Encodings.String()),
		slog.String("accept_language", n.Languages.String()),
	)
}

type ctxKey string

const negotiatorsCtxKey ctxKey = "negotiators"

// NewContext returns a copy of ctx carrying n.
func NewContext(ctx context.Context, n *Negotiators) context.Context {
	return context.WithValue(ctx, negotiatorsCtxKey, n)
}

// FromContext returns the negotiators stored by the middleware.
func FromContext(ctx context.Context) (*Negotiators, bool) {
	n, ok := ctx.Value(negotiatorsCtxKey).(*Negotiators)
	return n, ok && n != nil
}
