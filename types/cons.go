// Package types is a small constructor domain for polar automata: primitive tags,
// functions and records with width subtyping.
package types

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/cottand/biunify/auto"
	"github.com/xtgo/set"
)

type Kind uint8

const (
	KindTag Kind = iota
	KindFunc
	KindRecord
)

// Label is a field of a function or record constructor
type Label struct {
	Name     string
	Variance auto.Polarity
}

func (l Label) Polarity() auto.Polarity { return l.Variance }
func (l Label) String() string          { return l.Name }

var (
	Dom = Label{Name: "dom", Variance: auto.Neg}
	Rng = Label{Name: "rng", Variance: auto.Pos}
)

// FieldLabel is the label of the record field name. Record fields are covariant.
func FieldLabel(name string) Label {
	return Label{Name: name, Variance: auto.Pos}
}

type field struct {
	label  Label
	states auto.StateSet
}

// Cons is the constructor attached to automaton states.
//
// Tags of different names are different components, so a state can hold Int and Str at once.
type Cons struct {
	kind Kind
	tag  string
	// fields are sorted by label name
	fields []field
}

var _ auto.Constructor[Cons] = Cons{}

func NewTag(name string) Cons {
	return Cons{kind: KindTag, tag: name}
}

func NewFunc(dom, rng auto.StateSet) Cons {
	return Cons{kind: KindFunc, fields: []field{{Dom, dom}, {Rng, rng}}}
}

func NewRecord(fields map[string]auto.StateSet) Cons {
	c := Cons{kind: KindRecord, fields: make([]field, 0, len(fields))}
	for _, name := range sortedKeys(fields) {
		c.fields = append(c.fields, field{FieldLabel(name), fields[name]})
	}
	return c
}

func (c Cons) Component() string {
	switch c.kind {
	case KindTag:
		return "tag:" + c.tag
	case KindFunc:
		return "fn"
	default:
		return "record"
	}
}

// Leq is the shape order: tags only relate to themselves, any function relates to any
// function, and a record relates to records whose fields it all has
func (c Cons) Leq(other Cons) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case KindTag:
		return c.tag == other.tag
	case KindFunc:
		return true
	default:
		required := other.fieldNames()
		return len(interSorted(c.fieldNames(), required)) == len(required)
	}
}

// Join combines two constructors of the same component. The fields of records are
// intersected in positive states and united in negative ones.
func (c Cons) Join(other Cons, pol auto.Polarity) Cons {
	if c.kind != other.kind || c.Component() != other.Component() {
		panic(fmt.Sprintf("cannot join %s with %s", c, other))
	}
	switch c.kind {
	case KindTag:
		return c
	case KindFunc:
		return NewFunc(c.param(Dom).Union(other.param(Dom)), c.param(Rng).Union(other.param(Rng)))
	}

	var names []string
	if pol == auto.Pos {
		names = interSorted(c.fieldNames(), other.fieldNames())
	} else {
		names = unionSorted(c.fieldNames(), other.fieldNames())
	}
	fields := make(map[string]auto.StateSet, len(names))
	for _, name := range names {
		label := FieldLabel(name)
		fields[name] = c.param(label).Union(other.param(label))
	}
	return NewRecord(fields)
}

func (c Cons) Params() iter.Seq2[auto.Label, auto.StateSet] {
	return func(yield func(auto.Label, auto.StateSet) bool) {
		for _, f := range c.fields {
			if !yield(f.label, f.states) {
				return
			}
		}
	}
}

// Param returns the states of the field labelled l, or the empty set
func (c Cons) Param(l Label) auto.StateSet {
	return c.param(l)
}

func (c Cons) param(l Label) auto.StateSet {
	i := sort.Search(len(c.fields), func(i int) bool { return c.fields[i].label.Name >= l.Name })
	if i < len(c.fields) && c.fields[i].label == l {
		return c.fields[i].states
	}
	return auto.StateSet{}
}

func (c Cons) fieldNames() []string {
	names := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		names = append(names, f.label.Name)
	}
	return names
}

func (c Cons) String() string {
	switch c.kind {
	case KindTag:
		return c.tag
	case KindFunc:
		return fmt.Sprintf("fn(dom=%s, rng=%s)", c.param(Dom), c.param(Rng))
	}
	parts := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		parts = append(parts, f.label.Name+"="+f.states.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// interSorted and unionSorted take sorted, duplicate free name lists

func interSorted(a, b []string) []string {
	data := append(append(make([]string, 0, len(a)+len(b)), a...), b...)
	n := set.Inter(sort.StringSlice(data), len(a))
	return data[:n]
}

func unionSorted(a, b []string) []string {
	data := append(append(make([]string, 0, len(a)+len(b)), a...), b...)
	n := set.Union(sort.StringSlice(data), len(a))
	return data[:n]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
