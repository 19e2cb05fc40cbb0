package header

import (
	"math"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/conneg/internal/errorutil"
	"github.com/ghettovoice/conneg/internal/grammar"
	"github.com/ghettovoice/conneg/internal/util"
)

// Weight is a quality value (RFC 7231 Section 5.3.1) in range [0, 1]
// with at most 3 decimal digits. Zero weight means "not acceptable".
type Weight float64

const (
	// MinWeight marks an explicitly rejected value.
	MinWeight Weight = 0
	// MaxWeight is the weight of entries without a q parameter.
	MaxWeight Weight = 1
	// FallbackWeight is assigned by the parsers to entries with a malformed q parameter.
	FallbackWeight Weight = 0.001
)

const maxWeightDecimals = 3

// NewWeight validates v and converts it to a [Weight].
// It fails with [ErrInvalidWeight] on NaN or infinity, [ErrOutOfRange] when v is outside of [0, 1]
// and [ErrInvalidPrecision] when v has more than 3 decimal digits.
func NewWeight(v float64) (Weight, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidWeight, "%v is not a number", v))
	}
	if v < 0 || v > 1 {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrOutOfRange, "%v is not within [0, 1]", v))
	}
	if decimals(v) > maxWeightDecimals {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPrecision,
			"%v has more than %d decimal digits", v, maxWeightDecimals))
	}
	return Weight(v), nil
}

// ParseWeight parses a weight from its textual form s (string or []byte).
// Surrounding whitespace is ignored. See [NewWeight] for validation rules.
func ParseWeight[T ~string | ~[]byte](s T) (Weight, error) {
	str := strings.TrimSpace(string(s))
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidWeight, err))
	}
	return errtrace.Wrap2(NewWeight(v))
}

// MustWeight is like [NewWeight] but panics on error.
func MustWeight(v float64) Weight { return util.Must2(NewWeight(v)) }

func decimals(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// String renders the weight as bare "0" or "1" for the bounds, otherwise as a shortest decimal.
func (w Weight) String() string { return strconv.FormatFloat(float64(w), 'f', -1, 64) }

// IsZero reports whether the weight marks a rejection.
func (w Weight) IsZero() bool { return w == 0 }

// IsValid reports whether the weight is within range and precision limits.
func (w Weight) IsValid() bool {
	_, err := NewWeight(float64(w))
	return err == nil
}

// entryWeight implements the q-value lookup of a header entry.
// A missing parameters part or q key gives [MaxWeight],
// a malformed q value gives [FallbackWeight]. Only the first q key counts.
func entryWeight(params string, hasParams bool) Weight {
	if !hasParams {
		return MaxWeight
	}
	for _, p := range strings.Split(params, ";") {
		node, err := grammar.ParseQParam(p)
		if err != nil {
			continue
		}

		var val string
		if n, ok := node.GetNode("q-text"); ok {
			val = trimSpace(n.String())
		}
		if !grammar.IsQValue(val) {
			return FallbackWeight
		}
		w, err := ParseWeight(val)
		if err != nil {
			return FallbackWeight
		}
		return w
	}
	return MaxWeight
}
