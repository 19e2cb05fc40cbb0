// Package negotiate selects the best server-supported value for a client's
// Accept-* header preferences (RFC 7231 Section 5.3).
//
// A [Negotiator] wraps a parsed preference list. It is created once per header
// per request and never changes afterwards, so it is safe for concurrent use.
//
//	n := negotiate.MediaTypes(r.Header.Get("Accept"))
//	m, ok := n.Negotiate("application/json", "text/html")
//	if !ok {
//		w.WriteHeader(http.StatusNotAcceptable)
//		return
//	}
//	w.Header().Set("Content-Type", m.Supported)
//
// # Algorithm
//
// Entries with zero weight exclude every candidate they cover. Rejection is local
// to the candidates it covers and never fails the whole negotiation. The remaining
// entries are walked from the most to the least preferred. For each entry the
// candidates are scanned in the order given by the caller, so the first candidate
// covered by the most preferred entry wins and the caller's order breaks ties.
package negotiate
