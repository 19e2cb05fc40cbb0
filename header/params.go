package header

import (
	"io"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/conneg/internal/grammar"
	"github.com/ghettovoice/conneg/internal/ioutil"
	"github.com/ghettovoice/conneg/internal/util"
)

// Param is a single media type parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered list of media type parameters.
// Names are matched case-sensitively and kept as given, except for surrounding whitespace.
// Methods that modify the list return the updated list, like append does.
type Params []Param

// Get returns the value of the first parameter with the given name.
func (ps Params) Get(name string) (string, bool) {
	name = util.TrimSP(name)
	if i := ps.index(name); i >= 0 {
		return ps[i].Value, true
	}
	return "", false
}

// Has reports whether a parameter with the given name exists.
func (ps Params) Has(name string) bool { return ps.index(util.TrimSP(name)) >= 0 }

func (ps Params) index(name string) int {
	return slices.IndexFunc(ps, func(p Param) bool { return p.Name == name })
}

// Set replaces the value of the parameter with the given name or appends a new parameter.
func (ps Params) Set(name, value string) Params {
	name = util.TrimSP(name)
	if i := ps.index(name); i >= 0 {
		ps[i].Value = value
		return ps
	}
	return append(ps, Param{Name: name, Value: value})
}

// Del removes all parameters with the given name.
func (ps Params) Del(name string) Params {
	name = util.TrimSP(name)
	return slices.DeleteFunc(ps, func(p Param) bool { return p.Name == name })
}

// Keys returns parameter names in order.
func (ps Params) Keys() []string {
	keys := make([]string, len(ps))
	for i := range ps {
		keys[i] = ps[i].Name
	}
	return keys
}

// Len returns the number of parameters.
func (ps Params) Len() int { return len(ps) }

// Clone returns a copy of the list.
func (ps Params) Clone() Params { return slices.Clone(ps) }

// Equal reports whether both lists hold the same name/value pairs regardless of order.
func (ps Params) Equal(other Params) bool {
	if len(ps) != len(other) {
		return false
	}
	for _, p := range ps {
		if v, ok := other.Get(p.Name); !ok || v != p.Value {
			return false
		}
	}
	return true
}

// String renders the parameters as a sequence of ";name=value" pairs.
func (ps Params) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ps.renderTo(sb) //nolint:errcheck
	return sb.String()
}

func (ps Params) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, p := range ps {
		cw.Fprint(";", p.Name, "=", quoteParamValue(p.Value))
	}
	return errtrace.Wrap2(cw.Result())
}

func quoteParamValue(v string) string {
	switch {
	case grammar.IsToken(v):
		return v
	case strings.Contains(v, `"`):
		return "'" + v + "'"
	default:
		return `"` + v + `"`
	}
}

// buildParams extracts the key=value pairs from the parameters part of an entry.
//
// Without quote characters, params are split on ';' and each piece contributes
// its leftmost pair. When a quote character occurs anywhere, the whole string is
// scanned for consecutive pairs instead, so quoted values may contain ';' and
// the other quote character.
func buildParams(params string, hasParams bool) Params {
	if !hasParams {
		return nil
	}

	var ps Params
	if strings.ContainsAny(params, `"'`) {
		for s := params; ; {
			p, rest, ok := findParam(s)
			if !ok {
				break
			}
			ps = ps.Set(p.Name, p.Value)
			s = rest
		}
	} else {
		for _, part := range strings.Split(params, ";") {
			if p, _, ok := findParam(part); ok {
				ps = ps.Set(p.Name, p.Value)
			}
		}
	}

	if ps = ps.Del("q"); len(ps) == 0 {
		return nil
	}
	return ps
}

// findParam returns the leftmost parameter in s and the input following it.
func findParam(s string) (p Param, rest string, ok bool) {
	for i := range len(s) {
		if node, ok := grammar.MatchParameter(s[i:]); ok {
			return buildFromParamNode(node), s[i+node.Len():], true
		}
	}
	return Param{}, "", false
}

func buildFromParamNode(node *abnf.Node) Param {
	p := Param{Name: grammar.MustGetNode(node, "param-name").String()}
	if n, ok := node.GetNode("param-value"); ok {
		p.Value = n.String()
	}
	if v := p.Value; len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		p.Value = v[1 : len(v)-1]
	}
	return p
}
