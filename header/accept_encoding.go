package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/conneg/internal/grammar"
	"github.com/ghettovoice/conneg/internal/ioutil"
	"github.com/ghettovoice/conneg/internal/util"
)

// AcceptEncoding is a parsed Accept-Encoding header (RFC 7231 Section 5.3.4),
// ordered from the most to the least preferred content coding.
type AcceptEncoding []Encoding

// ParseAcceptEncoding parses the Accept-Encoding header value s.
// The "Accept-Encoding:" prefix is optional. An empty value gives "*".
// Malformed entries are skipped, it never fails.
func ParseAcceptEncoding(s string) AcceptEncoding {
	return parseList[AcceptEncoding](AcceptEncoding(nil).CanonicName(), s, anyEncoding, parseEncodingEntry)
}

func (AcceptEncoding) CanonicName() Name { return "Accept-Encoding" }

// RenderTo writes the full header "Accept-Encoding: value" to w.
func (hdr AcceptEncoding) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr))
}

func (hdr AcceptEncoding) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrEntries(w, hdr))
}

func (hdr AcceptEncoding) Render() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.RenderTo)
}

func (hdr AcceptEncoding) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr AcceptEncoding) String() string { return hdr.RenderValue() }

func (hdr AcceptEncoding) Format(f fmt.State, verb rune) {
	type hideMethods AcceptEncoding
	type AcceptEncoding hideMethods
	formatHdr(f, verb, hdr, AcceptEncoding(hdr))
}

func (hdr AcceptEncoding) Clone() AcceptEncoding { return cloneHdrEntries(hdr) }

func (hdr AcceptEncoding) Equal(val any) bool { return equalHdr(hdr, val) }

func (hdr AcceptEncoding) IsValid() bool { return validHdr(hdr) }

// Identity is the "no transformation" content coding.
// It is acceptable unless excluded explicitly or by "*;q=0" (RFC 7231 Section 5.3.4).
const Identity = "identity"

// Encoding is a single Accept-Encoding entry.
type Encoding struct {
	// Encoding is the lowercase content coding or "*".
	Encoding string
	Weight   Weight
}

var anyEncoding = Encoding{Encoding: Wildcard, Weight: MaxWeight}

// NewEncoding creates a content coding entry with validated weight.
// The coding is trimmed and lowercased, an empty coding becomes "*".
func NewEncoding(encoding string, weight float64) (Encoding, error) {
	w, err := NewWeight(weight)
	if err != nil {
		return Encoding{}, errtrace.Wrap(err)
	}
	enc := Encoding{Encoding: util.Norm(encoding), Weight: w}
	if enc.Encoding == "" {
		enc.Encoding = Wildcard
	}
	return enc, nil
}

func parseEncodingEntry(entry string) (Encoding, bool) {
	ident, params, hasParams := splitEntry(entry)
	coding, ok := parseCoding(ident)
	if !ok {
		return Encoding{}, false
	}
	return Encoding{Encoding: coding, Weight: entryWeight(params, hasParams)}, true
}

func (enc Encoding) Quality() Weight { return enc.Weight }

// Match reports whether the candidate coding equals the entry, the entry is "*"
// or the candidate is [Identity], which every entry covers.
func (enc Encoding) Match(candidate string) bool {
	coding, ok := parseCoding(candidate)
	if !ok {
		return false
	}
	return enc.Encoding == coding || coding == Identity || enc.Encoding == Wildcard
}

// Rejects reports whether a zero weight entry names the candidate or is "*".
// Unlike [Encoding.Match], a rejection of another coding never excludes [Identity].
func (enc Encoding) Rejects(candidate string) bool {
	if !enc.Weight.IsZero() {
		return false
	}
	coding, ok := parseCoding(candidate)
	if !ok {
		return false
	}
	return enc.Encoding == coding || enc.Encoding == Wildcard
}

// Compare orders by weight, then a concrete coding beats "*".
func (enc Encoding) Compare(other Encoding) int {
	if c := compareWeights(enc.Weight, other.Weight); c != 0 {
		return c
	}
	return compareSpecificity([2]string{enc.Encoding}, [2]string{other.Encoding})
}

// RenderTo writes the canonical form "coding;q=weight" to w.
func (enc Encoding) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(enc.Encoding, ";q=", enc.Weight.String())
	return errtrace.Wrap2(cw.Result())
}

func (enc Encoding) String() string { return renderToString(enc.RenderTo) }

func (enc Encoding) Format(f fmt.State, verb rune) {
	type hideMethods Encoding
	type Encoding hideMethods
	formatItem(f, verb, enc, Encoding(enc))
}

func (enc Encoding) Equal(val any) bool {
	var other Encoding
	switch v := val.(type) {
	case Encoding:
		other = v
	case *Encoding:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return enc == other
}

func (enc Encoding) IsValid() bool { return grammar.IsToken(enc.Encoding) && enc.Weight.IsValid() }

func (enc Encoding) IsZero() bool { return enc == Encoding{} }

func (enc Encoding) Clone() Encoding { return enc }

func (enc Encoding) MarshalText() ([]byte, error) {
	return []byte(enc.String()), nil
}

func (enc *Encoding) UnmarshalText(data []byte) error {
	v, err := unmarshalEntry(data, parseEncodingEntry)
	*enc = v
	return errtrace.Wrap(err)
}
