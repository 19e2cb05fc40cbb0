package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/conneg/internal/grammar"
	"github.com/ghettovoice/conneg/internal/ioutil"
	"github.com/ghettovoice/conneg/internal/util"
)

// Accept is a parsed Accept header (RFC 7231 Section 5.3.2),
// ordered from the most to the least preferred media range.
type Accept []MediaType

// ParseAccept parses the Accept header value s.
// The "Accept:" prefix is optional. An empty value gives "*/*".
// Malformed entries are skipped, it never fails.
func ParseAccept(s string) Accept {
	return parseList[Accept](Accept(nil).CanonicName(), s, anyMediaType, parseMediaTypeEntry)
}

func (Accept) CanonicName() Name { return "Accept" }

// RenderTo writes the full header "Accept: value" to w.
func (hdr Accept) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr))
}

func (hdr Accept) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrEntries(w, hdr))
}

func (hdr Accept) Render() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.RenderTo)
}

func (hdr Accept) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr Accept) String() string { return hdr.RenderValue() }

func (hdr Accept) Format(f fmt.State, verb rune) {
	type hideMethods Accept
	type Accept hideMethods
	formatHdr(f, verb, hdr, Accept(hdr))
}

func (hdr Accept) Clone() Accept { return cloneHdrEntries(hdr) }

func (hdr Accept) Equal(val any) bool { return equalHdr(hdr, val) }

func (hdr Accept) IsValid() bool { return validHdr(hdr) }

// MediaType is a single Accept entry: a media range with parameters and weight.
type MediaType struct {
	// Type is the lowercase top-level type or "*".
	Type string
	// Subtype is the lowercase subtype or "*".
	Subtype string
	// Params holds the media range parameters, never including "q".
	Params Params
	Weight Weight
}

var anyMediaType = MediaType{Type: Wildcard, Subtype: Wildcard, Weight: MaxWeight}

// NewMediaType creates a media range with validated weight.
// Type and subtype are trimmed and lowercased, an empty type becomes "*",
// an empty subtype becomes "*" when the type is "*". The "q" parameter is dropped from params.
func NewMediaType(typ, subtype string, weight float64, params Params) (MediaType, error) {
	w, err := NewWeight(weight)
	if err != nil {
		return MediaType{}, errtrace.Wrap(err)
	}
	mt := MediaType{
		Type:    util.Norm(typ),
		Subtype: util.Norm(subtype),
		Params:  params.Clone().Del("q"),
		Weight:  w,
	}
	if mt.Type == "" {
		mt.Type = Wildcard
	}
	if mt.Subtype == "" && mt.Type == Wildcard {
		mt.Subtype = Wildcard
	}
	return mt, nil
}

func parseMediaTypeEntry(entry string) (MediaType, bool) {
	ident, params, hasParams := splitEntry(entry)
	node, err := grammar.ParseMediaRange(ident)
	if err != nil {
		return MediaType{}, false
	}
	typ, subtype := buildFromMediaRangeNode(node)
	mt := MediaType{
		Type:    typ,
		Subtype: subtype,
		Params:  buildParams(params, hasParams),
		Weight:  entryWeight(params, hasParams),
	}
	if mt.Subtype == "" {
		if mt.Type != Wildcard {
			return MediaType{}, false
		}
		mt.Subtype = Wildcard
	}
	return mt, true
}

// buildFromMediaRangeNode returns the lowercase type and subtype, the subtype is empty when absent.
func buildFromMediaRangeNode(node *abnf.Node) (typ, subtype string) {
	typ = util.LCase(grammar.MustGetNode(node, "type").String())
	if n, ok := node.GetNode("subtype"); ok {
		subtype = util.LCase(n.String())
	}
	return typ, subtype
}

// MediaRange returns "type/subtype".
func (mt MediaType) MediaRange() string { return mt.Type + "/" + mt.Subtype }

func (mt MediaType) Quality() Weight { return mt.Weight }

// Match reports whether the candidate media type is covered by the range.
// Candidate parameters, if any, are ignored.
func (mt MediaType) Match(candidate string) bool {
	ident, _, _ := splitEntry(candidate)
	node, err := grammar.ParseMediaRange(ident)
	if err != nil {
		return false
	}
	typ, subtype := buildFromMediaRangeNode(node)
	switch {
	case mt.Type == Wildcard && mt.Subtype == Wildcard:
		return true
	case mt.Type != typ:
		return false
	case mt.Subtype == Wildcard:
		return true
	default:
		return mt.Subtype == subtype
	}
}

func (mt MediaType) Rejects(candidate string) bool {
	return mt.Weight.IsZero() && mt.Match(candidate)
}

// Compare orders by weight, then by specificity:
// concrete type and subtype beat wildcards, more parameters beat fewer.
func (mt MediaType) Compare(other MediaType) int {
	if c := compareWeights(mt.Weight, other.Weight); c != 0 {
		return c
	}
	if c := compareSpecificity([2]string{mt.Type, mt.Subtype}, [2]string{other.Type, other.Subtype}); c != 0 {
		return c
	}
	switch a, b := mt.Params.Len(), other.Params.Len(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// RenderTo writes the canonical form "type/subtype;q=weight[;name=value]*" to w.
func (mt MediaType) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(mt.MediaRange(), ";q=", mt.Weight.String())
	cw.Call(mt.Params.renderTo)
	return errtrace.Wrap2(cw.Result())
}

func (mt MediaType) String() string { return renderToString(mt.RenderTo) }

func (mt MediaType) Format(f fmt.State, verb rune) {
	type hideMethods MediaType
	type MediaType hideMethods
	formatItem(f, verb, mt, MediaType(mt))
}

func (mt MediaType) Equal(val any) bool {
	var other MediaType
	switch v := val.(type) {
	case MediaType:
		other = v
	case *MediaType:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return mt.Type == other.Type &&
		mt.Subtype == other.Subtype &&
		mt.Weight == other.Weight &&
		mt.Params.Equal(other.Params)
}

func (mt MediaType) IsValid() bool {
	if !grammar.IsToken(mt.Type) || !grammar.IsToken(mt.Subtype) || !mt.Weight.IsValid() {
		return false
	}
	for _, p := range mt.Params {
		if !grammar.IsToken(p.Name) || p.Name == "q" {
			return false
		}
	}
	return true
}

func (mt MediaType) IsZero() bool {
	return mt.Type == "" && mt.Subtype == "" && len(mt.Params) == 0 && mt.Weight == 0
}

func (mt MediaType) Clone() MediaType {
	mt.Params = mt.Params.Clone()
	return mt
}

func (mt MediaType) MarshalText() ([]byte, error) {
	return []byte(mt.String()), nil
}

func (mt *MediaType) UnmarshalText(data []byte) error {
	v, err := unmarshalEntry(data, parseMediaTypeEntry)
	*mt = v
	return errtrace.Wrap(err)
}
