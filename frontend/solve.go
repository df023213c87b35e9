package frontend

import (
	"github.com/cottand/biunify/auto"
	"github.com/cottand/biunify/auto/build"
	"github.com/cottand/biunify/types"
)

// Solution holds the automaton built for a File
type Solution struct {
	Automaton   *auto.Automaton[types.Cons]
	Constraints []auto.Constraint
	vars        *build.MemoVars[string]
}

// Build builds every constraint of f into one automaton. Variables with the same
// name are the same variable across the whole file.
func (f *File) Build() *Solution {
	a := auto.New[types.Cons]()
	vars := build.NewMemoVars[string]()
	b := build.New[types.Cons, string](a, vars)

	s := &Solution{Automaton: a, vars: vars}
	for _, c := range f.Constraints {
		s.Constraints = append(s.Constraints, auto.Constraint{
			Pos: b.Build(auto.Pos, c.Pos),
			Neg: b.Build(auto.Neg, c.Neg),
		})
	}
	logger.Debug("frontend: built constraints", "states", a.Len())
	return s
}

// Check biunifies every constraint, in order.
// It returns auto.ErrInadmissible if they cannot all hold.
func (s *Solution) Check() error {
	return s.Automaton.BiunifyAll(s.Constraints...)
}

// Variable returns the flow pair standing for the variable name
func (s *Solution) Variable(name string) (auto.FlowPair, bool) {
	return s.vars.Pair(name)
}

// Roots returns the states built for the constraints, pos before neg
func (s *Solution) Roots() []auto.StateID {
	roots := make([]auto.StateID, 0, 2*len(s.Constraints))
	for _, c := range s.Constraints {
		roots = append(roots, c.Pos, c.Neg)
	}
	return roots
}
