// Package auto implements polar automata: graphs of states carrying structural
// constructors and flow edges, used to represent recursive types with subtyping,
// and biunification over them.
package auto

import (
	"fmt"
	"strings"

	"github.com/cottand/biunify/internal/log"
	"github.com/cottand/biunify/util"
	"github.com/hashicorp/go-set/v3"
)

var logger = log.DefaultLogger.With("section", "biunify")

type state[C Constructor[C]] struct {
	pol  Polarity
	flow *set.TreeSet[StateID]
	cons ConstructorSet[C]
}

// Automaton stores the states of one or more types.
//
// States are never removed, only merged into each other. An Automaton is not safe
// for concurrent use.
type Automaton[C Constructor[C]] struct {
	states []state[C]
}

func New[C Constructor[C]]() *Automaton[C] {
	return &Automaton[C]{}
}

// FlowPair is the pair of states standing for the two poles of one type variable
type FlowPair struct {
	Neg, Pos StateID
}

// Get returns the pole of polarity pol
func (p FlowPair) Get(pol Polarity) StateID {
	if pol == Pos {
		return p.Pos
	}
	return p.Neg
}

func (p FlowPair) String() string {
	return fmt.Sprintf("%s~%s", p.Neg, p.Pos)
}

// StateView is a read-only copy of a state's contents
type StateView[C Constructor[C]] struct {
	Polarity Polarity
	Flow     StateSet
	Cons     ConstructorSet[C]
}

// Len returns the number of states allocated so far
func (a *Automaton[C]) Len() int {
	return len(a.states)
}

// NewState allocates an empty state of polarity pol
func (a *Automaton[C]) NewState(pol Polarity) StateID {
	if pol != Pos && pol != Neg {
		panic(fmt.Sprintf("invalid polarity %d", pol))
	}
	id := StateID(len(a.states))
	a.states = append(a.states, state[C]{
		pol:  pol,
		flow: set.NewTreeSet[StateID](compareStateID),
		cons: NewConstructorSet[C](),
	})
	return id
}

// NewVariable allocates the two linked poles of a fresh type variable
func (a *Automaton[C]) NewVariable() FlowPair {
	pair := FlowPair{Neg: a.NewState(Neg), Pos: a.NewState(Pos)}
	a.addFlow(pair.Neg, pair.Pos)
	return pair
}

func (a *Automaton[C]) Polarity(id StateID) Polarity {
	return a.get(id).pol
}

// State returns a snapshot of the contents of id
func (a *Automaton[C]) State(id StateID) StateView[C] {
	s := a.get(id)
	return StateView[C]{
		Polarity: s.pol,
		Flow:     NewStateSet(s.flow.Slice()...),
		Cons:     s.cons,
	}
}

func (a *Automaton[C]) get(id StateID) *state[C] {
	if id < 0 || int(id) >= len(a.states) {
		panic(fmt.Sprintf("state %s does not belong to this automaton", id))
	}
	return &a.states[id]
}

func (a *Automaton[C]) expectPolarity(pol Polarity, ids ...StateID) {
	for _, id := range ids {
		if got := a.get(id).pol; got != pol {
			panic(fmt.Sprintf("state %s has polarity %s, expected %s", id, got, pol))
		}
	}
}

// AddConstructor attaches con to the state at, joining it with any constructor
// of the same component already there
func (a *Automaton[C]) AddConstructor(pol Polarity, at StateID, con C) {
	a.expectPolarity(pol, at)
	s := a.get(at)
	s.cons = s.cons.Add(pol, con)
}

// AddUnion makes at accept anything one of children accepts, by merging every child into at
func (a *Automaton[C]) AddUnion(pol Polarity, at StateID, children ...StateID) {
	for _, child := range children {
		a.Merge(pol, at, child)
	}
}

// Merge adds the constructors and flow edges of from into into.
// Merging a state into itself does nothing.
func (a *Automaton[C]) Merge(pol Polarity, into, from StateID) {
	a.expectPolarity(pol, into, from)
	if into == from {
		return
	}
	target, source := a.get(into), a.get(from)
	target.cons = target.cons.Merge(pol, source.cons)
	a.MergeFlow(pol, into, from)
}

// MergeFlow gives at every flow edge of source. Flow edges are recorded
// on both of their endpoints, and always join a Neg state to a Pos state.
func (a *Automaton[C]) MergeFlow(pol Polarity, at, source StateID) {
	a.expectPolarity(pol, at, source)
	for _, other := range a.get(source).flow.Slice() {
		a.addFlow(at, other)
	}
}

func (a *Automaton[C]) addFlow(x, y StateID) {
	a.get(x).flow.Insert(y)
	a.get(y).flow.Insert(x)
}

// Reachable lists the states reachable from roots through constructor fields and
// flow edges, in depth-first order
func (a *Automaton[C]) Reachable(roots ...StateID) []StateID {
	visited := make(map[StateID]bool, len(roots))
	var reached []StateID
	var stack util.Stack[StateID]
	for i := len(roots) - 1; i >= 0; i-- {
		stack.Push(roots[i])
	}
	for {
		id, ok := stack.Pop()
		if !ok {
			return reached
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		reached = append(reached, id)

		s := a.get(id)
		var next []StateID
		for c := range s.cons.All() {
			for _, states := range c.Params() {
				next = append(next, states.Slice()...)
			}
		}
		next = append(next, s.flow.Slice()...)
		for i := len(next) - 1; i >= 0; i-- {
			if !visited[next[i]] {
				stack.Push(next[i])
			}
		}
	}
}

// Describe renders the state id, for example `#3+ flow{#4} cons{fn(dom={#5}, rng={#6})}`
func (a *Automaton[C]) Describe(id StateID) string {
	s := a.get(id)
	sb := &strings.Builder{}
	sb.WriteString(id.String())
	sb.WriteString(s.pol.String())
	sb.WriteString(" flow")
	sb.WriteString(NewStateSet(s.flow.Slice()...).String())
	sb.WriteString(" cons")
	sb.WriteString(s.cons.String())
	return sb.String()
}
