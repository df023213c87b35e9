// Package build turns polar type expressions into states of an auto.Automaton.
package build

import (
	"fmt"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/biunify/auto"
	"github.com/cottand/biunify/auto/polar"
	"github.com/cottand/biunify/internal/log"
	"github.com/cottand/biunify/util"
)

var logger = log.DefaultLogger.With("section", "build")

// Builder builds type expressions into an automaton, resolving free variables with vars
type Builder[C auto.Constructor[C], V any] struct {
	auto *auto.Automaton[C]
	vars VarResolver[V]
}

func New[C auto.Constructor[C], V any](a *auto.Automaton[C], vars VarResolver[V]) *Builder[C, V] {
	return &Builder[C, V]{auto: a, vars: vars}
}

// Memoized returns a Builder where occurrences of the same variable share one flow pair
func Memoized[C auto.Constructor[C], V comparable](a *auto.Automaton[C]) *Builder[C, V] {
	return New[C, V](a, NewMemoVars[V]())
}

// Simple returns a Builder for expressions whose variables already are flow pairs
func Simple[C auto.Constructor[C]](a *auto.Automaton[C]) *Builder[C, auto.FlowPair] {
	return New[C, auto.FlowPair](a, PassThroughVars{})
}

// pending is a state whose contents still need to be built
type pending[C, V any] struct {
	pol auto.Polarity
	at  auto.StateID
	ty  polar.Ty[C, V]
	// recs holds the states of the enclosing Recursive binders, innermost first
	recs *immutable.List[auto.StateID]
}

// Build returns a state of polarity pol representing ty.
//
// Recursive types become cycles in the automaton. Build panics if ty contains a
// BoundVar that does not refer to an enclosing binder.
func (b *Builder[C, V]) Build(pol auto.Polarity, ty polar.Ty[C, V]) auto.StateID {
	at := b.auto.NewState(pol)
	var work util.Stack[pending[C, V]]
	work.Push(pending[C, V]{pol: pol, at: at, ty: ty, recs: immutable.NewList[auto.StateID]()})
	for {
		next, ok := work.Pop()
		if !ok {
			break
		}
		b.buildAt(next.pol, next.at, next.ty, &work, next.recs)
	}
	logger.Debug("build: done", "root", at, "pol", pol, "ty", ty, "states", b.auto.Len())
	return at
}

// buildAt builds ty into the existing state at. Constructor fields are left on work.
func (b *Builder[C, V]) buildAt(
	pol auto.Polarity,
	at auto.StateID,
	ty polar.Ty[C, V],
	work *util.Stack[pending[C, V]],
	recs *immutable.List[auto.StateID],
) {
	switch ty := ty.(type) {
	case polar.Zero[C, V]:
	case polar.Add[C, V]:
		l := b.buildClosure(pol, true, ty.L, work, recs)
		r := b.buildClosure(pol, true, ty.R, work, recs)
		b.auto.AddUnion(pol, at, l, r)
	case polar.UnboundVar[C, V]:
		pair := b.vars.resolve(b.auto, ty.Var)
		b.auto.MergeFlow(pol, at, pair.Get(pol))
	case polar.Recursive[C, V]:
		inner := recs.Prepend(at)
		if ref, ok := ty.Body.(polar.BoundVar[C, V]); ok {
			b.auto.Merge(pol, at, boundState(inner, ref.Index))
			return
		}
		b.buildAt(pol, at, ty.Body, work, inner)
	case polar.BoundVar[C, V]:
		panic(fmt.Sprintf("bound variable %s built outside of a recursive binder's body", ty))
	case polar.Constructed[C, V]:
		con := ty.Term.Build(func(label auto.Label, field polar.Ty[C, V]) auto.StateSet {
			return auto.NewStateSet(b.buildClosure(pol.Compose(label.Polarity()), false, field, work, recs))
		})
		b.auto.AddConstructor(pol, at, con)
	default:
		panic(fmt.Sprintf("unexpected type expression %T", ty))
	}
}

// buildClosure returns a state for ty. Bound variables resolve to their binder's state.
// Other types get a new state, built now if inline is set, or later from work otherwise.
func (b *Builder[C, V]) buildClosure(
	pol auto.Polarity,
	inline bool,
	ty polar.Ty[C, V],
	work *util.Stack[pending[C, V]],
	recs *immutable.List[auto.StateID],
) auto.StateID {
	if ref, ok := ty.(polar.BoundVar[C, V]); ok {
		return boundState(recs, ref.Index)
	}
	id := b.auto.NewState(pol)
	if inline {
		b.buildAt(pol, id, ty, work, recs)
	} else {
		work.Push(pending[C, V]{pol: pol, at: id, ty: ty, recs: recs})
	}
	return id
}

func boundState(recs *immutable.List[auto.StateID], index int) auto.StateID {
	if index < 0 || index >= recs.Len() {
		panic(fmt.Sprintf("bound variable $%d refers past the %d enclosing binders", index, recs.Len()))
	}
	return recs.Get(index)
}
