package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/conneg/internal/grammar"
	"github.com/ghettovoice/conneg/internal/ioutil"
	"github.com/ghettovoice/conneg/internal/util"
)

// AcceptCharset is a parsed Accept-Charset header (RFC 7231 Section 5.3.3),
// ordered from the most to the least preferred charset.
type AcceptCharset []Charset

// ParseAcceptCharset parses the Accept-Charset header value s.
// The "Accept-Charset:" prefix is optional. An empty value gives "*".
// Malformed entries are skipped, it never fails.
func ParseAcceptCharset(s string) AcceptCharset {
	return parseList[AcceptCharset](AcceptCharset(nil).CanonicName(), s, anyCharset, parseCharsetEntry)
}

func (AcceptCharset) CanonicName() Name { return "Accept-Charset" }

// RenderTo writes the full header "Accept-Charset: value" to w.
func (hdr AcceptCharset) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr))
}

func (hdr AcceptCharset) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrEntries(w, hdr))
}

func (hdr AcceptCharset) Render() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.RenderTo)
}

func (hdr AcceptCharset) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr AcceptCharset) String() string { return hdr.RenderValue() }

func (hdr AcceptCharset) Format(f fmt.State, verb rune) {
	type hideMethods AcceptCharset
	type AcceptCharset hideMethods
	formatHdr(f, verb, hdr, AcceptCharset(hdr))
}

func (hdr AcceptCharset) Clone() AcceptCharset { return cloneHdrEntries(hdr) }

func (hdr AcceptCharset) Equal(val any) bool { return equalHdr(hdr, val) }

func (hdr AcceptCharset) IsValid() bool { return validHdr(hdr) }

// Charset is a single Accept-Charset entry.
type Charset struct {
	// Charset is the lowercase charset name or "*".
	Charset string
	Weight  Weight
}

var anyCharset = Charset{Charset: Wildcard, Weight: MaxWeight}

// NewCharset creates a charset entry with validated weight.
// The name is trimmed and lowercased, an empty name becomes "*".
func NewCharset(charset string, weight float64) (Charset, error) {
	w, err := NewWeight(weight)
	if err != nil {
		return Charset{}, errtrace.Wrap(err)
	}
	cs := Charset{Charset: util.Norm(charset), Weight: w}
	if cs.Charset == "" {
		cs.Charset = Wildcard
	}
	return cs, nil
}

func parseCharsetEntry(entry string) (Charset, bool) {
	ident, params, hasParams := splitEntry(entry)
	name, ok := parseCoding(ident)
	if !ok {
		return Charset{}, false
	}
	return Charset{Charset: name, Weight: entryWeight(params, hasParams)}, true
}

func (cs Charset) Quality() Weight { return cs.Weight }

// Match reports whether the candidate charset equals the entry or the entry is "*".
func (cs Charset) Match(candidate string) bool {
	name, ok := parseCoding(candidate)
	if !ok {
		return false
	}
	return cs.Charset == Wildcard || cs.Charset == name
}

func (cs Charset) Rejects(candidate string) bool {
	return cs.Weight.IsZero() && cs.Match(candidate)
}

// Compare orders by weight, then a concrete charset beats "*".
func (cs Charset) Compare(other Charset) int {
	if c := compareWeights(cs.Weight, other.Weight); c != 0 {
		return c
	}
	return compareSpecificity([2]string{cs.Charset}, [2]string{other.Charset})
}

// RenderTo writes the canonical form "charset;q=weight" to w.
func (cs Charset) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(cs.Charset, ";q=", cs.Weight.String())
	return errtrace.Wrap2(cw.Result())
}

func (cs Charset) String() string { return renderToString(cs.RenderTo) }

func (cs Charset) Format(f fmt.State, verb rune) {
	type hideMethods Charset
	type Charset hideMethods
	formatItem(f, verb, cs, Charset(cs))
}

func (cs Charset) Equal(val any) bool {
	var other Charset
	switch v := val.(type) {
	case Charset:
		other = v
	case *Charset:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return cs == other
}

func (cs Charset) IsValid() bool { return grammar.IsToken(cs.Charset) && cs.Weight.IsValid() }

func (cs Charset) IsZero() bool { return cs == Charset{} }

func (cs Charset) Clone() Charset { return cs }

func (cs Charset) MarshalText() ([]byte, error) {
	return []byte(cs.String()), nil
}

func (cs *Charset) UnmarshalText(data []byte) error {
	v, err := unmarshalEntry(data, parseCharsetEntry)
	*cs = v
	return errtrace.Wrap(err)
}
