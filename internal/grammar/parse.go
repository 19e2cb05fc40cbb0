package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/conneg/internal/errorutil"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

func parse(op abnf.Operator, s []byte) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op(s, 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

// ParseCoding parses a charset or content-coding with optional surrounding whitespace.
// The value is in the "coding-value" node.
func ParseCoding[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(coding, []byte(s)))
}

// ParseLanguageRange parses primary["-"subtag].
// The parts are in the "primary-tag" and optional "subtag" nodes.
func ParseLanguageRange[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(languageRange, []byte(s)))
}

// ParseMediaRange parses type["/"subtype].
// The parts are in the "type" and optional "subtype" nodes.
func ParseMediaRange[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(mediaRange, []byte(s)))
}

// ParseQParam parses a single "q=value" parameter. The key is case-sensitive.
// The raw value, including surrounding whitespace, is in the "q-text" node.
func ParseQParam[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(qParam, []byte(s)))
}

// MatchParameter matches a name=value parameter at the start of s.
// Unlike the parse functions it does not require the whole input to match,
// the caller continues after the node length.
// The parts are in the "param-name" and "param-value" nodes, a quoted value keeps its quotes.
func MatchParameter[T ~string | ~[]byte](s T) (*abnf.Node, bool) {
	if len(s) == 0 {
		return nil, false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := parameter([]byte(s), 0, ns); err != nil {
		return nil, false
	}
	return ns.Best(), true
}
