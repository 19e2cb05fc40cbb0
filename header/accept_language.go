package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/conneg/internal/grammar"
	"github.com/ghettovoice/conneg/internal/ioutil"
	"github.com/ghettovoice/conneg/internal/util"
)

// AcceptLanguage is a parsed Accept-Language header (RFC 7231 Section 5.3.5),
// ordered from the most to the least preferred language range.
type AcceptLanguage []Language

// ParseAcceptLanguage parses the Accept-Language header value s.
// The "Accept-Language:" prefix is optional. An empty value or a bare "*" gives "*-*".
// Malformed entries are skipped, it never fails.
func ParseAcceptLanguage(s string) AcceptLanguage {
	return parseList[AcceptLanguage](AcceptLanguage(nil).CanonicName(), s, anyLanguage, parseLanguageEntry)
}

func (AcceptLanguage) CanonicName() Name { return "Accept-Language" }

// RenderTo writes the full header "Accept-Language: value" to w.
func (hdr AcceptLanguage) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr))
}

func (hdr AcceptLanguage) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrEntries(w, hdr))
}

func (hdr AcceptLanguage) Render() string {
	if hdr == nil {
		return ""
	}
	return renderToString(hdr.RenderTo)
}

func (hdr AcceptLanguage) RenderValue() string { return renderToString(hdr.renderValueTo) }

func (hdr AcceptLanguage) String() string { return hdr.RenderValue() }

func (hdr AcceptLanguage) Format(f fmt.State, verb rune) {
	type hideMethods AcceptLanguage
	type AcceptLanguage hideMethods
	formatHdr(f, verb, hdr, AcceptLanguage(hdr))
}

func (hdr AcceptLanguage) Clone() AcceptLanguage { return cloneHdrEntries(hdr) }

func (hdr AcceptLanguage) Equal(val any) bool { return equalHdr(hdr, val) }

func (hdr AcceptLanguage) IsValid() bool { return validHdr(hdr) }

// Language is a single Accept-Language entry: a language range split into
// the primary tag and one subtag.
type Language struct {
	// PrimaryTag is the lowercase primary tag or "*".
	PrimaryTag string
	// Subtag is the lowercase subtag or "*" when absent.
	Subtag string
	Weight Weight
}

var anyLanguage = Language{PrimaryTag: Wildcard, Subtag: Wildcard, Weight: MaxWeight}

// NewLanguage creates a language range with validated weight.
// Tags are trimmed and lowercased, empty tags become "*".
func NewLanguage(primaryTag, subtag string, weight float64) (Language, error) {
	w, err := NewWeight(weight)
	if err != nil {
		return Language{}, errtrace.Wrap(err)
	}
	lang := Language{PrimaryTag: util.Norm(primaryTag), Subtag: util.Norm(subtag), Weight: w}
	if lang.PrimaryTag == "" {
		lang.PrimaryTag = Wildcard
	}
	if lang.Subtag == "" {
		lang.Subtag = Wildcard
	}
	return lang, nil
}

func parseLanguageEntry(entry string) (Language, bool) {
	ident, params, hasParams := splitEntry(entry)
	primary, subtag, ok := parseLanguageRange(ident)
	if !ok {
		return Language{}, false
	}
	lang := Language{
		PrimaryTag: primary,
		Subtag:     subtag,
		Weight:     entryWeight(params, hasParams),
	}
	if lang.Subtag == "" {
		lang.Subtag = Wildcard
	}
	return lang, true
}

// parseLanguageRange returns the lowercase primary tag and subtag of s.
// The subtag is empty when s has none.
func parseLanguageRange(s string) (primary, subtag string, ok bool) {
	node, err := grammar.ParseLanguageRange(s)
	if err != nil {
		return "", "", false
	}
	primary = util.LCase(grammar.MustGetNode(node, "primary-tag").String())
	if n, ok := node.GetNode("subtag"); ok {
		subtag = util.LCase(n.String())
	}
	return primary, subtag, true
}

// Tag returns the language range: "*" when both parts are wildcards, "primary-subtag" otherwise.
func (lang Language) Tag() string {
	if lang.PrimaryTag == Wildcard && lang.Subtag == Wildcard {
		return Wildcard
	}
	return lang.PrimaryTag + "-" + lang.Subtag
}

func (lang Language) Quality() Weight { return lang.Weight }

// Match reports whether the candidate language tag is covered by the range.
// A range with subtag "*" covers every candidate with the same primary tag,
// a range with primary tag "*" covers everything.
func (lang Language) Match(candidate string) bool {
	primary, subtag, ok := parseLanguageRange(candidate)
	if !ok {
		return false
	}
	switch {
	case lang.PrimaryTag == Wildcard:
		return true
	case lang.PrimaryTag != primary:
		return false
	case lang.Subtag == Wildcard:
		return true
	default:
		return lang.Subtag == subtag
	}
}

func (lang Language) Rejects(candidate string) bool {
	return lang.Weight.IsZero() && lang.Match(candidate)
}

// Compare orders by weight, then concrete tags beat wildcards.
func (lang Language) Compare(other Language) int {
	if c := compareWeights(lang.Weight, other.Weight); c != 0 {
		return c
	}
	return compareSpecificity([2]string{lang.PrimaryTag, lang.Subtag}, [2]string{other.PrimaryTag, other.Subtag})
}

// RenderTo writes the canonical form "tag;q=weight" to w.
func (lang Language) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(lang.Tag(), ";q=", lang.Weight.String())
	return errtrace.Wrap2(cw.Result())
}

func (lang Language) String() string { return renderToString(lang.RenderTo) }

func (lang Language) Format(f fmt.State, verb rune) {
	type hideMethods Language
	type Language hideMethods
	formatItem(f, verb, lang, Language(lang))
}

func (lang Language) Equal(val any) bool {
	var other Language
	switch v := val.(type) {
	case Language:
		other = v
	case *Language:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return lang == other
}

func (lang Language) IsValid() bool {
	primary, _, ok := parseLanguageRange(lang.Tag())
	return ok && primary == lang.PrimaryTag && lang.Weight.IsValid()
}

func (lang Language) IsZero() bool { return lang == Language{} }

func (lang Language) Clone() Language { return lang }

func (lang Language) MarshalText() ([]byte, error) {
	return []byte(lang.String()), nil
}

func (lang *Language) UnmarshalText(data []byte) error {
	v, err := unmarshalEntry(data, parseLanguageEntry)
	*lang = v
	return errtrace.Wrap(err)
}
