package header

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"net/textproto"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/conneg/internal/errorutil"
	"github.com/ghettovoice/conneg/internal/grammar"
	"github.com/ghettovoice/conneg/internal/ioutil"
	"github.com/ghettovoice/conneg/internal/util"
)

// Wildcard is the "any value" marker of the Accept-* headers.
const Wildcard = grammar.Wildcard

// Item is a single preference entry of an Accept-* header parametrized by its own type.
// It is implemented by [Charset], [Encoding], [Language] and [MediaType].
type Item[T any] interface {
	// Quality returns the entry weight.
	Quality() Weight
	// Match reports whether the concrete candidate value is covered by the entry.
	Match(candidate string) bool
	// Rejects reports whether the entry explicitly excludes the candidate.
	Rejects(candidate string) bool
	// Compare orders entries by preference: negative result means less preferred.
	Compare(other T) int
	Clone() T
	IsValid() bool
	String() string
}

// Sort sorts items in place from the most to the least preferred,
// keeping the original order of equally preferred items. It returns items for convenience.
func Sort[S ~[]E, E Item[E]](items S) S {
	slices.SortStableFunc(items, func(a, b E) int { return b.Compare(a) })
	return items
}

// compareSpecificity compares identity parts position by position.
// The first position where only one item has a wildcard decides, that item is less specific.
func compareSpecificity(a, b [2]string) int {
	for i := range a {
		switch aw, bw := a[i] == Wildcard, b[i] == Wildcard; {
		case aw && !bw:
			return -1
		case !aw && bw:
			return 1
		}
	}
	return 0
}

func compareWeights(a, b Weight) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Header is a parsed Accept-* header.
type Header interface {
	CanonicName() Name
	Render() string
	RenderValue() string
	String() string
	IsValid() bool
	Equal(val any) bool
}

// Name represents a header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return grammar.IsToken(n) }

// Equal compares this Name with another for equality.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	case string:
		other = Name(v)
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

// CanonicName converts name to the canonical form.
// The canonicalization converts the first letter and any letter following a hyphen to upper case;
// the rest are converted to lowercase. For example, the canonical name for "accept-encoding" is "Accept-Encoding".
func CanonicName[T ~string](name T) Name {
	return Name(textproto.CanonicalMIMEHeaderKey(string(util.TrimSP(name))))
}

// trimName strips surrounding whitespace and the optional "Name:" prefix from the header value s.
func trimName(name Name, s string) string {
	s = trimSpace(s)
	if n := len(name); len(s) > n && s[n] == ':' && util.EqFold(s[:n], name) {
		s = trimSpace(s[n+1:])
	}
	return s
}

const wsChars = " \t\r\n\f\v"

func trimSpace(s string) string { return strings.Trim(s, wsChars) }

// parseCoding matches a charset or content-coding and returns it lowercased.
func parseCoding(s string) (string, bool) {
	node, err := grammar.ParseCoding(s)
	if err != nil {
		return "", false
	}
	return util.LCase(grammar.MustGetNode(node, "coding-value").String()), true
}

// splitEntry splits one header entry on the first ';' into the identity part
// and the parameters part. ok is false when the entry has no parameters.
func splitEntry(entry string) (ident, params string, ok bool) {
	return strings.Cut(entry, ";")
}

// parseList implements the lenient list parsing shared by all Accept-* headers:
// an empty value yields the single default entry, malformed entries are skipped,
// the result is sorted from the most to the least preferred.
func parseList[S ~[]E, E Item[E]](name Name, s string, def E, parseEntry func(string) (E, bool)) S {
	s = trimName(name, s)
	if s == "" {
		return S{def}
	}

	entries := strings.Split(s, listSep)
	list := make(S, 0, len(entries))
	for _, entry := range entries {
		if item, ok := parseEntry(entry); ok {
			list = append(list, item)
		}
	}
	return Sort(list)
}

func unmarshalEntry[E any](data []byte, parseEntry func(string) (E, bool)) (E, error) {
	var zero E
	if len(trimSpace(string(data))) == 0 {
		return zero, nil
	}
	item, ok := parseEntry(string(data))
	if !ok {
		return zero, errtrace.Wrap(newMalformedInputErr("%q", data))
	}
	return item, nil
}

const listSep = ","

func renderHdr[H interface {
	CanonicName() Name
	renderValueTo(w io.Writer) (int, error)
}](w io.Writer, hdr H) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(hdr.CanonicName(), ": ")
	cw.Call(hdr.renderValueTo)
	return errtrace.Wrap2(cw.Result())
}

func renderHdrEntries[H ~[]E, E interface{ RenderTo(io.Writer) (int, error) }](w io.Writer, hdr H) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i := range hdr {
		if i > 0 {
			cw.WriteString(listSep)
		}
		cw.Call(hdr[i].RenderTo)
	}
	return errtrace.Wrap2(cw.Result())
}

func renderToString(fn func(io.Writer) (int, error)) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	fn(sb) //nolint:errcheck
	return sb.String()
}

// formatHdr implements fmt.Formatter for header lists:
// %s and %q print the value, %+s and %+q print the full header with name.
func formatHdr(f fmt.State, verb rune, hdr Header, plain any) {
	switch verb {
	case 's':
		if f.Flag('+') {
			fmt.Fprint(f, hdr.Render())
			return
		}
		fmt.Fprint(f, hdr.String())
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(hdr.Render()))
			return
		}
		fmt.Fprint(f, strconv.Quote(hdr.String()))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), plain)
	}
}

// formatItem implements fmt.Formatter for single entries:
// %s, %q and plain %v print the canonical form, %+v and %#v print the struct.
func formatItem(f fmt.State, verb rune, item fmt.Stringer, plain any) {
	switch verb {
	case 's':
		fmt.Fprint(f, item.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(item.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, item.String())
			return
		}
		fmt.Fprintf(f, fmt.FormatString(f, verb), plain)
	}
}

func equalHdr[H ~[]E, E interface{ Equal(val any) bool }](hdr H, val any) bool {
	var other H
	switch v := val.(type) {
	case H:
		other = v
	case *H:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(a, b E) bool { return a.Equal(b) })
}

func validHdr[H ~[]E, E interface{ IsValid() bool }](hdr H) bool {
	return hdr != nil && !slices.ContainsFunc(hdr, func(e E) bool { return !e.IsValid() })
}

// Parse parses a full header line "Name: value" into one of
// [Accept], [AcceptCharset], [AcceptEncoding] or [AcceptLanguage].
// The value part is parsed leniently, only unknown or missing names produce an error.
//
// Example usage:
//
//	hdr, err := header.Parse("Accept-Language: en-US, en;q=0.5")
func Parse[T ~string | ~[]byte](s T) (Header, error) {
	name, value, ok := strings.Cut(string(s), ":")
	if !ok {
		return nil, errtrace.Wrap(newMalformedInputErr("missing header name"))
	}
	switch CanonicName(name) {
	case Accept(nil).CanonicName():
		return ParseAccept(value), nil
	case AcceptCharset(nil).CanonicName():
		return ParseAcceptCharset(value), nil
	case AcceptEncoding(nil).CanonicName():
		return ParseAcceptEncoding(value), nil
	case AcceptLanguage(nil).CanonicName():
		return ParseAcceptLanguage(value), nil
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupportedHeader, "%q", util.TrimSP(name)))
	}
}

func cloneHdrEntries[H ~[]E, E interface{ Clone() E }](hdr H) H {
	if hdr == nil {
		return nil
	}
	hdr2 := make(H, len(hdr))
	for i := range hdr {
		hdr2[i] = hdr[i].Clone()
	}
	return hdr2
}
