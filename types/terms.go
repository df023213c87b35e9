package types

import (
	"strings"

	"github.com/cottand/biunify/auto"
	"github.com/cottand/biunify/auto/polar"
)

var (
	_ polar.Term[Cons, string] = tagTerm[string]{}
	_ polar.Term[Cons, string] = funcTerm[string]{}
	_ polar.Term[Cons, string] = recordTerm[string]{}
)

type tagTerm[V any] struct {
	name string
}

func (t tagTerm[V]) Build(func(auto.Label, polar.Ty[Cons, V]) auto.StateSet) Cons {
	return NewTag(t.name)
}

func (t tagTerm[V]) String() string { return t.name }

type funcTerm[V any] struct {
	dom, rng polar.Ty[Cons, V]
}

func (t funcTerm[V]) Build(mapper func(auto.Label, polar.Ty[Cons, V]) auto.StateSet) Cons {
	return NewFunc(mapper(Dom, t.dom), mapper(Rng, t.rng))
}

func (t funcTerm[V]) String() string { return "(" + t.dom.String() + " -> " + t.rng.String() + ")" }

type recordTerm[V any] struct {
	fields map[string]polar.Ty[Cons, V]
}

func (t recordTerm[V]) Build(mapper func(auto.Label, polar.Ty[Cons, V]) auto.StateSet) Cons {
	fields := make(map[string]auto.StateSet, len(t.fields))
	for _, name := range sortedKeys(t.fields) {
		fields[name] = mapper(FieldLabel(name), t.fields[name])
	}
	return NewRecord(fields)
}

func (t recordTerm[V]) String() string {
	parts := make([]string, 0, len(t.fields))
	for _, name := range sortedKeys(t.fields) {
		parts = append(parts, name+": "+t.fields[name].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Tag is the primitive type name, such as Int or Str
func Tag[V any](name string) polar.Ty[Cons, V] {
	return polar.Cons[Cons, V](tagTerm[V]{name: name})
}

func Func[V any](dom, rng polar.Ty[Cons, V]) polar.Ty[Cons, V] {
	return polar.Cons[Cons, V](funcTerm[V]{dom: dom, rng: rng})
}

func Record[V any](fields map[string]polar.Ty[Cons, V]) polar.Ty[Cons, V] {
	return polar.Cons[Cons, V](recordTerm[V]{fields: fields})
}
