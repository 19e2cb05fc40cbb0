package header_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/conneg/header"
)

func TestNewWeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		val     float64
		want    header.Weight
		wantErr error
	}{
		{"zero", 0, 0, nil},
		{"one", 1, 1, nil},
		{"one decimal", 0.5, 0.5, nil},
		{"three decimals", 0.123, 0.123, nil},
		{"min fraction", 0.001, 0.001, nil},
		{"negative", -0.1, 0, header.ErrOutOfRange},
		{"minus one", -1, 0, header.ErrOutOfRange},
		{"above one", 1.1, 0, header.ErrOutOfRange},
		{"four decimals", 0.1234, 0, header.ErrInvalidPrecision},
		{"tiny", 0.0001, 0, header.ErrInvalidPrecision},
		{"nan", math.NaN(), 0, header.ErrInvalidWeight},
		{"inf", math.Inf(1), 0, header.ErrInvalidWeight},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.NewWeight(c.val)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("header.NewWeight(%v) error = %v, want %v\ndiff (-got +want):\n%v", c.val, err, c.wantErr, diff)
			}
			if got != c.want {
				t.Errorf("header.NewWeight(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestParseWeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    header.Weight
		wantErr error
	}{
		{"int", "1", 1, nil},
		{"zero", "0", 0, nil},
		{"decimal", "0.8", 0.8, nil},
		{"spaces", " 0.25\t", 0.25, nil},
		{"one with zeros", "1.000", 1, nil},
		{"letters", "a", 0, header.ErrInvalidWeight},
		{"empty", "", 0, header.ErrInvalidWeight},
		{"out of range", "2", 0, header.ErrOutOfRange},
		{"precision", "0.1234", 0, header.ErrInvalidPrecision},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseWeight(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("header.ParseWeight(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if got != c.want {
				t.Errorf("header.ParseWeight(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestMustWeight(t *testing.T) {
	t.Parallel()

	if got := header.MustWeight(0.7); got != 0.7 {
		t.Errorf("header.MustWeight(0.7) = %v, want 0.7", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("header.MustWeight(1.5) did not panic")
		}
	}()
	header.MustWeight(1.5)
}

func TestWeight_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		w    header.Weight
		want string
	}{
		{0, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{0.001, "0.001"},
		{0.25, "0.25"},
	}

	for _, c := range cases {
		if got := c.w.String(); got != c.want {
			t.Errorf("header.Weight(%v).String() = %q, want %q", float64(c.w), got, c.want)
		}
	}
}

func TestWeight_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		w    header.Weight
		want bool
	}{
		{0, true},
		{1, true},
		{0.333, true},
		{0.3333, false},
		{-0.5, false},
		{1.5, false},
	}

	for _, c := range cases {
		if got := c.w.IsValid(); got != c.want {
			t.Errorf("header.Weight(%v).IsValid() = %v, want %v", float64(c.w), got, c.want)
		}
	}
}
