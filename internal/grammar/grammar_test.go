package grammar_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/abnf"
	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/conneg/internal/grammar"
)

func TestIsToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"gzip", true},
		{"unicode-1-1", true},
		{"*", true},
		{"x-{weird}|'token'`~", true},
		{"@unicode", false},
		{"gzip error", false},
		{"a/b", false},
		{"a;b", false},
	}

	for _, c := range cases {
		if got := grammar.IsToken(c.in); got != c.want {
			t.Errorf("grammar.IsToken(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsQValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"0", true},
		{"1", true},
		{"0.5", true},
		{"0.123", true},
		{"0.", false},
		{"0.1234", false},
		{"1.0", false},
		{"1.", false},
		{"1.000", false},
		{"1.5", false},
		{".5", false},
		{" 0.5", false},
		{"0.8abc", false},
	}

	for _, c := range cases {
		if got := grammar.IsQValue(c.in); got != c.want {
			t.Errorf("grammar.IsQValue(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// nodeValues collects the string values of the named nodes, "-" stands for a missing node.
func nodeValues(node *abnf.Node, keys ...string) []string {
	vals := make([]string, len(keys))
	for i, k := range keys {
		if n, ok := node.GetNode(k); ok {
			vals[i] = n.String()
		} else {
			vals[i] = "-"
		}
	}
	return vals
}

type parseCase struct {
	in      string
	want    []string
	wantErr error
}

func runParseCases(t *testing.T, name string, parse func(string) (*abnf.Node, error), keys []string, cases []parseCase) {
	t.Helper()

	for _, c := range cases {
		node, err := parse(c.in)
		if c.wantErr != nil {
			if !errors.Is(err, c.wantErr) {
				t.Errorf("grammar.%s(%q) error = %v, want %v", name, c.in, err, c.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("grammar.%s(%q) error = %v, want nil", name, c.in, err)
			continue
		}
		if diff := cmp.Diff(nodeValues(node, keys...), c.want); diff != "" {
			t.Errorf("grammar.%s(%q) nodes %v diff (-got +want):\n%v", name, c.in, keys, diff)
		}
	}
}

func TestParseCoding(t *testing.T) {
	t.Parallel()

	runParseCases(t, "ParseCoding", grammar.ParseCoding[string], []string{"coding-value"}, []parseCase{
		{in: " gzip\t", want: []string{"gzip"}},
		{in: "\r\nISO-8859-1 ", want: []string{"ISO-8859-1"}},
		{in: "*", want: []string{"*"}},
		{in: "@blah", wantErr: grammar.ErrMalformedInput},
		{in: "gzip error", wantErr: grammar.ErrMalformedInput},
		{in: "  ", wantErr: grammar.ErrMalformedInput},
		{in: "", wantErr: grammar.ErrEmptyInput},
	})
}

func TestParseLanguageRange(t *testing.T) {
	t.Parallel()

	runParseCases(t, "ParseLanguageRange", grammar.ParseLanguageRange[string], []string{"primary-tag", "subtag"}, []parseCase{
		{in: "en", want: []string{"en", "-"}},
		{in: " en-US ", want: []string{"en", "US"}},
		{in: "en - gb", want: []string{"en", "gb"}},
		{in: "en-*", want: []string{"en", "*"}},
		{in: "*", want: []string{"*", "-"}},
		{in: "abcdefgh-12345678", want: []string{"abcdefgh", "12345678"}},
		{in: "abcdefghi", wantErr: grammar.ErrMalformedInput},
		{in: "en-us-omg", wantErr: grammar.ErrMalformedInput},
		{in: "en/us", wantErr: grammar.ErrMalformedInput},
		{in: "en-", wantErr: grammar.ErrMalformedInput},
		{in: "*en", wantErr: grammar.ErrMalformedInput},
		{in: "", wantErr: grammar.ErrEmptyInput},
	})
}

func TestParseMediaRange(t *testing.T) {
	t.Parallel()

	runParseCases(t, "ParseMediaRange", grammar.ParseMediaRange[string], []string{"type", "subtype"}, []parseCase{
		{in: "text/html", want: []string{"text", "html"}},
		{in: "\ttext / plain\r", want: []string{"text", "plain"}},
		{in: "application/vnd.api+json", want: []string{"application", "vnd.api+json"}},
		{in: "*/*", want: []string{"*", "*"}},
		{in: "*", want: []string{"*", "-"}},
		{in: "text/plain/omg", wantErr: grammar.ErrMalformedInput},
		{in: "text/", wantErr: grammar.ErrMalformedInput},
		{in: "/html", wantErr: grammar.ErrMalformedInput},
		{in: "", wantErr: grammar.ErrEmptyInput},
	})
}

func TestParseQParam(t *testing.T) {
	t.Parallel()

	runParseCases(t, "ParseQParam", grammar.ParseQParam[string], []string{"q-text"}, []parseCase{
		{in: "q=0", want: []string{"0"}},
		{in: " q=0.25", want: []string{"0.25"}},
		{in: "\tq\r=\n1", want: []string{"\n1"}},
		{in: "q=1.000", want: []string{"1.000"}},
		{in: "q=x", want: []string{"x"}},
		{in: "Q=0.5", wantErr: grammar.ErrMalformedInput},
		{in: "qs=1", wantErr: grammar.ErrMalformedInput},
		{in: "q0.8", wantErr: grammar.ErrMalformedInput},
		{in: "level=1", wantErr: grammar.ErrMalformedInput},
		{in: "", wantErr: grammar.ErrEmptyInput},
	})
}

func TestMatchParameter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    []string
		wantLen int
		wantOK  bool
	}{
		{"token", "level=1", []string{"level", "1"}, 7, true},
		{"spaces", "level \t= 1;q=1", []string{"level", "1"}, 10, true},
		{"double quoted", `level="a;b;cc'cd";x=1`, []string{"level", `"a;b;cc'cd"`}, 17, true},
		{"single quoted", `level='\blah;x;1;;'`, []string{"level", `'\blah;x;1;;'`}, 19, true},
		{"unterminated quote", `a="b`, []string{"a", ""}, 2, true},
		{"no equals", "level", nil, 0, false},
		{"empty", "", nil, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			node, ok := grammar.MatchParameter(c.in)
			if ok != c.wantOK {
				t.Fatalf("grammar.MatchParameter(%q) ok = %v, want %v", c.in, ok, c.wantOK)
			}
			if !ok {
				return
			}
			if got := node.Len(); got != c.wantLen {
				t.Errorf("grammar.MatchParameter(%q) length = %d, want %d", c.in, got, c.wantLen)
			}
			if diff := cmp.Diff(nodeValues(node, "param-name", "param-value"), c.want); diff != "" {
				t.Errorf("grammar.MatchParameter(%q) diff (-got +want):\n%v", c.in, diff)
			}
		})
	}
}

func TestMustGetNode(t *testing.T) {
	t.Parallel()

	node, err := grammar.ParseMediaRange("text")
	if err != nil {
		t.Fatalf("grammar.ParseMediaRange(\"text\") error = %v, want nil", err)
	}

	defer func() {
		r := recover()
		err, _ := r.(error)
		if !errors.Is(err, grammar.ErrNodeNotFound) {
			t.Errorf("recover() = %v, want %v", r, grammar.ErrNodeNotFound)
		}
	}()
	grammar.MustGetNode(node, "subtype")
}
