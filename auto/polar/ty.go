// Package polar defines polar type expressions: finite trees that describe
// possibly recursive types, with recursion expressed through de Bruijn indexed binders.
package polar

import (
	"fmt"

	"github.com/cottand/biunify/auto"
)

// Ty is a type expression over constructors C and free variables V.
//
// The variants are Zero, Add, UnboundVar, BoundVar, Recursive and Constructed.
type Ty[C, V any] interface {
	fmt.Stringer
	// isTy seals the variants. It mentions C and V so that they can be
	// inferred from a Ty argument.
	isTy(C, V)
}

// Term is the structural node of a Constructed type.
//
// Build returns the automaton constructor for the term, where every field has
// been replaced by the states mapper built for it.
type Term[C, V any] interface {
	fmt.Stringer
	Build(mapper func(label auto.Label, field Ty[C, V]) auto.StateSet) C
}

var (
	_ Ty[any, any] = Zero[any, any]{}
	_ Ty[any, any] = Add[any, any]{}
	_ Ty[any, any] = UnboundVar[any, any]{}
	_ Ty[any, any] = BoundVar[any, any]{}
	_ Ty[any, any] = Recursive[any, any]{}
	_ Ty[any, any] = Constructed[any, any]{}
)

// Zero is the empty type: bottom in positive positions, top in negative ones
type Zero[C, V any] struct{}

// Add is the union (in positive positions) or intersection (in negative ones) of L and R
type Add[C, V any] struct {
	L, R Ty[C, V]
}

// UnboundVar is a free type variable
type UnboundVar[C, V any] struct {
	Var V
}

// BoundVar refers to the Index-th enclosing Recursive binder, 0 being the innermost
type BoundVar[C, V any] struct {
	Index int
}

// Recursive binds a new variable visible from inside Body, referring to the whole type
type Recursive[C, V any] struct {
	Body Ty[C, V]
}

type Constructed[C, V any] struct {
	Term Term[C, V]
}

func (Zero[C, V]) isTy(C, V)        {}
func (Add[C, V]) isTy(C, V)         {}
func (UnboundVar[C, V]) isTy(C, V)  {}
func (BoundVar[C, V]) isTy(C, V)    {}
func (Recursive[C, V]) isTy(C, V)   {}
func (Constructed[C, V]) isTy(C, V) {}

func (Zero[C, V]) String() string          { return "⊥" }
func (t Add[C, V]) String() string         { return fmt.Sprintf("(%s ⊔ %s)", t.L, t.R) }
func (t UnboundVar[C, V]) String() string  { return fmt.Sprintf("'%v", t.Var) }
func (t BoundVar[C, V]) String() string    { return fmt.Sprintf("$%d", t.Index) }
func (t Recursive[C, V]) String() string   { return fmt.Sprintf("μ.%s", t.Body) }
func (t Constructed[C, V]) String() string { return t.Term.String() }

func Empty[C, V any]() Ty[C, V] {
	return Zero[C, V]{}
}

// Union folds tys into nested Add nodes. An empty union is Zero.
func Union[C, V any](tys ...Ty[C, V]) Ty[C, V] {
	if len(tys) == 0 {
		return Zero[C, V]{}
	}
	ty := tys[len(tys)-1]
	for i := len(tys) - 2; i >= 0; i-- {
		ty = Add[C, V]{L: tys[i], R: ty}
	}
	return ty
}

func Var[C, V any](v V) Ty[C, V] {
	return UnboundVar[C, V]{Var: v}
}

func Ref[C, V any](index int) Ty[C, V] {
	return BoundVar[C, V]{Index: index}
}

func Rec[C, V any](body Ty[C, V]) Ty[C, V] {
	return Recursive[C, V]{Body: body}
}

func Cons[C, V any](term Term[C, V]) Ty[C, V] {
	return Constructed[C, V]{Term: term}
}
