// Package grammar implements the lexical rules of the Accept-* header family
// with ABNF operators.
//
// Parse functions match the whole input against a rule and return the best
// (longest) node tree. Callers walk the tree by rule names, for example:
//
//	node, err := grammar.ParseMediaRange("text/html")
//	typ := grammar.MustGetNode(node, "type").String()
package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/conneg/internal/errorutil"
)

// Error is a grammar error.
type Error = errorutil.Error

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
	ErrNodeNotFound   Error = "node not found"
)

// Wildcard is the "any value" marker used by every Accept-* header.
const Wildcard = "*"

// MustGetNode returns a pointer to the ABNF node with the given key.
func MustGetNode(n *abnf.Node, k string) *abnf.Node {
	sn, ok := n.GetNode(k)
	if !ok {
		panic(fmt.Errorf("get node %q from node %q: %w", k, n.Key, ErrNodeNotFound))
	}
	return sn
}

// IsToken reports whether the whole s is a non-empty token.
func IsToken[T ~string | ~[]byte](s T) bool {
	return matchAll(token, []byte(s))
}

// IsQValue reports whether s is "0", "1" or "0." followed by 1 to 3 digits.
func IsQValue[T ~string | ~[]byte](s T) bool {
	return matchAll(qvalue, []byte(s))
}

func matchAll(op abnf.Operator, s []byte) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op(s, 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}
