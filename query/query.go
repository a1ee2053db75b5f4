// Package query builds the canonical, deterministically ordered query
// strings Signature Version 2 signs.
package query

import (
	"sort"
	"strings"
)

// Value is a single query parameter value. A Value is either static or
// provided, in which case it is recomputed every time the parameter set
// is canonicalized, e.g. the request timestamp.
type Value struct {
	static   string
	provider func() string
}

// String returns a static Value.
func String(v string) Value {
	return Value{static: v}
}

// Provider returns a Value computed by fn at canonicalization time. fn
// may read whatever state it closes over, such as client configuration.
func Provider(fn func() string) Value {
	return Value{provider: fn}
}

func (v Value) resolve() string {
	if v.provider != nil {
		return v.provider()
	}
	return v.static
}

// ParameterSet is an ordered set of uniquely named query parameters.
type ParameterSet struct {
	names  []string
	values map[string]Value
}

// NewParameterSet returns an empty ParameterSet.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: map[string]Value{}}
}

// Set adds the named parameter, replacing any previous value under the
// same name.
func (p *ParameterSet) Set(name string, value Value) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Canonicalize resolves the set's values, applies overrides on top
// (replacing colliding names), and returns the canonical query string:
// name=value pairs with percent-encoded values, sorted bytewise by the
// full pair string, joined with "&". Output is independent of insertion
// order. Empty input yields the empty string.
func (p *ParameterSet) Canonicalize(overrides map[string]string) string {
	merged := map[string]string{}
	if p != nil {
		for _, name := range p.names {
			merged[name] = p.values[name].resolve()
		}
	}
	for name, value := range overrides {
		merged[name] = value
	}
	if len(merged) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(merged))
	for name, value := range merged {
		pairs = append(pairs, name+"="+Escape(value))
	}
	sort.Strings(pairs)

	return strings.Join(pairs, "&")
}
