package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/conneg/header"
)

func language(primary, subtag string, w header.Weight) header.Language {
	return header.Language{PrimaryTag: primary, Subtag: subtag, Weight: w}
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want header.AcceptLanguage
	}{
		{"empty", "", header.AcceptLanguage{language("*", "*", 1)}},
		{"bare wildcard", "*", header.AcceptLanguage{language("*", "*", 1)}},
		{"prefix", "Accept-Language: en-us", header.AcceptLanguage{language("en", "us", 1)}},
		{"primary only", "da", header.AcceptLanguage{language("da", "*", 1)}},
		{"upper case", "en-US", header.AcceptLanguage{language("en", "us", 1)}},
		{
			"sorted by weight",
			"en-*;q=0.2, en-us",
			header.AcceptLanguage{language("en", "us", 1), language("en", "*", 0.2)},
		},
		{
			"sorted by specificity",
			"en-*, en-us, *;q=0.8",
			header.AcceptLanguage{language("en", "us", 1), language("en", "*", 1), language("*", "*", 0.8)},
		},
		{
			"whitespace between entries",
			"\ten-us\r,\nen-gb ",
			header.AcceptLanguage{language("en", "us", 1), language("en", "gb", 1)},
		},
		{
			"whitespace around dash",
			"en - us",
			header.AcceptLanguage{language("en", "us", 1)},
		},
		{
			"whitespace around q",
			"en-us;\tq\r=\n1, en-gb",
			header.AcceptLanguage{language("en", "us", 1), language("en", "gb", 1)},
		},
		{"malformed q", "en-us;q=x", header.AcceptLanguage{language("en", "us", 0.001)}},
		{"skips extra subtags", "en-us, en-us-omg;q=0.9", header.AcceptLanguage{language("en", "us", 1)}},
		{"skips long tags", "english-unitedstates, fr", header.AcceptLanguage{language("fr", "*", 1)}},
		{"all malformed", "en/us", header.AcceptLanguage{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := header.ParseAcceptLanguage(c.in)
			if diff := cmp.Diff(got, c.want, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("header.ParseAcceptLanguage(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestNewLanguage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		primary string
		subtag  string
		weight  float64
		want    header.Language
		wantErr error
	}{
		{"defaults", "", "", 1, language("*", "*", 1), nil},
		{"subtag default", "en", "", 1, language("en", "*", 1), nil},
		{"normalizes", "\t\nEN \r", " \nUS\r\t", 0.8, language("en", "us", 0.8), nil},
		{"out of range", "en", "us", 1.1, header.Language{}, header.ErrOutOfRange},
		{"precision", "en", "us", 0.1234, header.Language{}, header.ErrInvalidPrecision},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.NewLanguage(c.primary, c.subtag, c.weight)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("header.NewLanguage() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if got != c.want {
				t.Errorf("header.NewLanguage() = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestLanguage_Tag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		lang header.Language
		want string
	}{
		{language("en", "us", 0.9), "en-us"},
		{language("en", "*", 1), "en-*"},
		{language("*", "*", 1), "*"},
	}

	for _, c := range cases {
		if got := c.lang.Tag(); got != c.want {
			t.Errorf("lang.Tag() = %q, want %q", got, c.want)
		}
	}

	if got, want := language("en", "us", 0.9).String(), "en-us;q=0.9"; got != want {
		t.Errorf("lang.String() = %q, want %q", got, want)
	}
}

func TestLanguage_Match(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		lang header.Language
		cand string
		want bool
	}{
		{"exact", language("en", "us", 1), "en-us", true},
		{"exact low weight", language("en", "us", 0.001), "en-us", true},
		{"case insensitive", language("en", "us", 1), "en-US", true},
		{"subtag wildcard", language("en", "*", 0.9), "en-us", true},
		{"subtag wildcard primary only", language("en", "*", 1), "en", true},
		{"full wildcard", language("*", "*", 0.1), "en-us", true},
		{"subtag differs", language("en", "us", 1), "en-gb", false},
		{"primary differs", language("en", "us", 1), "zh-us", false},
		{"candidate without subtag", language("en", "us", 1), "en", false},
		{"wildcard candidate", language("en", "us", 1), "*", false},
		{"malformed candidate", language("en", "us", 1), "en/us", false},
		{"empty candidate", language("*", "*", 1), "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.lang.Match(c.cand); got != c.want {
				t.Errorf("lang.Match(%q) = %v, want %v", c.cand, got, c.want)
			}
		})
	}
}

func TestLanguage_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		lang header.Language
		cand string
		want bool
	}{
		{"zero exact", language("en", "us", 0), "en-us", true},
		{"zero subtag wildcard", language("en", "*", 0), "en-us", true},
		{"zero full wildcard", language("*", "*", 0), "en-us", true},
		{"zero subtag differs", language("en", "us", 0), "en-gb", false},
		{"zero primary differs", language("en", "us", 0), "zh-us", false},
		{"zero wildcard candidate", language("en", "us", 0), "*", false},
		{"positive", language("en", "us", 0.001), "en-us", false},
		{"positive wildcard", language("*", "*", 1), "en-us", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.lang.Rejects(c.cand); got != c.want {
				t.Errorf("lang.Rejects(%q) = %v, want %v", c.cand, got, c.want)
			}
		})
	}
}

func TestLanguage_Compare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b header.Language
		want int
	}{
		{"higher weight", language("*", "*", 0.514), language("en", "us", 0.1), 1},
		{"equal", language("en", "us", 0.9), language("en", "us", 0.9), 0},
		{"concrete subtag", language("en", "us", 1), language("en", "*", 1), 1},
		{"wildcard primary", language("*", "*", 1), language("en", "*", 1), -1},
		{"wildcard primary against wildcard subtag", language("*", "us", 1), language("en", "*", 1), -1},
		{"wildcard subtag against wildcard primary", language("en", "*", 1), language("*", "us", 1), 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.a.Compare(c.b); got != c.want {
				t.Errorf("a.Compare(b) = %d, want %d", got, c.want)
			}
			if got := c.b.Compare(c.a); got != -c.want {
				t.Errorf("b.Compare(a) = %d, want %d", got, -c.want)
			}
		})
	}
}

func TestLanguage_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, lang := range []header.Language{language("en", "us", 1), language("en", "*", 0.5), language("*", "*", 0)} {
		got := header.ParseAcceptLanguage(lang.String())
		want := header.AcceptLanguage{lang}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("header.ParseAcceptLanguage(%q) = %v, want %v\ndiff (-got +want):\n%v", lang.String(), got, want, diff)
		}
	}
}

func TestLanguage_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		lang header.Language
		want bool
	}{
		{"zero", header.Language{}, false},
		{"valid", language("en", "us", 1), true},
		{"wildcards", language("*", "*", 1), true},
		{"long primary", language("toolongtag", "*", 1), false},
		{"bad weight", language("en", "us", -1), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.lang.IsValid(); got != c.want {
				t.Errorf("lang.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}
