package negotiate

import (
	"slices"

	"github.com/ghettovoice/conneg/header"
	"github.com/ghettovoice/conneg/internal/util"
)

// Match is a successful negotiation result.
type Match[T header.Item[T]] struct {
	// Supported is the selected candidate exactly as passed by the caller.
	Supported string
	// Preference is the client entry that accepted the candidate.
	Preference T
}

// Negotiator selects supported values against a client preference list.
// The zero value has no preferences and never selects anything.
// A negotiator is immutable once created and safe for concurrent use.
type Negotiator[T header.Item[T]] struct {
	items    []T
	rejected []T
	accepted []T
}

// New creates a negotiator over a copy of items sorted from the most to the least preferred.
func New[S ~[]T, T header.Item[T]](items S) *Negotiator[T] {
	n := &Negotiator[T]{items: header.Sort(slices.Clone([]T(items)))}
	for _, it := range n.items {
		if it.Quality().IsZero() {
			n.rejected = append(n.rejected, it)
		} else {
			n.accepted = append(n.accepted, it)
		}
	}
	return n
}

// MediaTypes creates a negotiator from the Accept header value.
func MediaTypes(hdr string) *Negotiator[header.MediaType] { return New(header.ParseAccept(hdr)) }

// Charsets creates a negotiator from the Accept-Charset header value.
func Charsets(hdr string) *Negotiator[header.Charset] { return New(header.ParseAcceptCharset(hdr)) }

// Encodings creates a negotiator from the Accept-Encoding header value.
func Encodings(hdr string) *Negotiator[header.Encoding] { return New(header.ParseAcceptEncoding(hdr)) }

// Languages creates a negotiator from the Accept-Language header value.
func Languages(hdr string) *Negotiator[header.Language] { return New(header.ParseAcceptLanguage(hdr)) }

// Negotiate returns the supported value the client prefers most together with
// the preference entry that accepted it. Candidates excluded by a zero weight entry
// are never selected. Equally preferred candidates are resolved by the order of supported.
// It reports false when no candidate is acceptable.
func (n *Negotiator[T]) Negotiate(supported ...string) (Match[T], bool) {
	if n == nil || len(n.items) == 0 || len(supported) == 0 {
		return Match[T]{}, false
	}

	cands := make([]string, 0, len(supported))
	for _, s := range supported {
		if util.TrimSP(s) == "" || n.rejects(s) {
			continue
		}
		cands = append(cands, s)
	}

	for _, it := range n.accepted {
		for _, c := range cands {
			if it.Match(c) {
				return Match[T]{Supported: c, Preference: it.Clone()}, true
			}
		}
	}
	return Match[T]{}, false
}

func (n *Negotiator[T]) rejects(cand string) bool {
	return slices.ContainsFunc(n.rejected, func(it T) bool { return it.Rejects(cand) })
}

// Accept reports whether any of the supported values is acceptable.
func (n *Negotiator[T]) Accept(supported ...string) bool {
	_, ok := n.Negotiate(supported...)
	return ok
}

// List returns a copy of the preference list, most preferred first.
func (n *Negotiator[T]) List() []T {
	if n == nil {
		return nil
	}
	items := make([]T, len(n.items))
	for i := range n.items {
		items[i] = n.items[i].Clone()
	}
	return items
}

// Len returns the number of preference entries.
func (n *Negotiator[T]) Len() int {
	if n == nil {
		return 0
	}
	return len(n.items)
}

// String renders the preference list as a header value, entries joined by a comma.
func (n *Negotiator[T]) String() string {
	if n == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, it := range n.items {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(it.String())
	}
	return sb.String()
}
