package auto

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/biunify/util"
)

// Label names a field of a Constructor.
//
// Implementations must be comparable: labels of two constructors are matched with ==.
type Label interface {
	fmt.Stringer
	// Polarity is the variance of the field: Pos when covariant, Neg when contravariant
	Polarity() Polarity
}

// Constructor is a structural type term (a function, a record, a primitive...) attached
// to the states of an Automaton. Its fields are sets of states.
type Constructor[C any] interface {
	fmt.Stringer
	// Component is the shape of the constructor. A state holds at most one
	// constructor per component.
	Component() string
	// Leq reports whether this constructor's shape is a subtype of other's,
	// without looking at the fields' states
	Leq(other C) bool
	// Join combines two constructors of the same component found in a state of polarity pol
	Join(other C, pol Polarity) C
	Params() iter.Seq2[Label, StateSet]
}

type componentComparer struct{}

func (componentComparer) Compare(a, b string) int { return cmp.Compare(a, b) }

// ConstructorSet is the persistent set of constructors of a state, indexed by component.
// Adding to a ConstructorSet returns a new set and leaves the original untouched,
// so a ConstructorSet read from a state is a snapshot.
type ConstructorSet[C Constructor[C]] struct {
	byComponent *immutable.SortedMap[string, C]
}

func NewConstructorSet[C Constructor[C]](cons ...C) ConstructorSet[C] {
	set := ConstructorSet[C]{byComponent: immutable.NewSortedMap[string, C](componentComparer{})}
	for _, c := range cons {
		set = set.Add(Pos, c)
	}
	return set
}

// Add returns a set containing c, joined at polarity pol with the constructor of
// the same component if there is one
func (s ConstructorSet[C]) Add(pol Polarity, c C) ConstructorSet[C] {
	if s.byComponent == nil {
		s = NewConstructorSet[C]()
	}
	component := c.Component()
	if existing, ok := s.byComponent.Get(component); ok {
		c = existing.Join(c, pol)
	}
	return ConstructorSet[C]{byComponent: s.byComponent.Set(component, c)}
}

// Merge adds every constructor of other to s at polarity pol
func (s ConstructorSet[C]) Merge(pol Polarity, other ConstructorSet[C]) ConstructorSet[C] {
	for c := range other.All() {
		s = s.Add(pol, c)
	}
	return s
}

func (s ConstructorSet[C]) Len() int {
	if s.byComponent == nil {
		return 0
	}
	return s.byComponent.Len()
}

func (s ConstructorSet[C]) Get(component string) (C, bool) {
	if s.byComponent == nil {
		var zero C
		return zero, false
	}
	return s.byComponent.Get(component)
}

// All iterates over the constructors ordered by component
func (s ConstructorSet[C]) All() iter.Seq[C] {
	return func(yield func(C) bool) {
		if s.byComponent == nil {
			return
		}
		itr := s.byComponent.Iterator()
		for !itr.Done() {
			_, c, _ := itr.Next()
			if !yield(c) {
				return
			}
		}
	}
}

// Intersection pairs the fields of constructors sharing a component in s and other.
// For each label present on both sides it yields the label and the field's states
// in s (Fst) and in other (Snd).
func (s ConstructorSet[C]) Intersection(other ConstructorSet[C]) iter.Seq2[Label, util.Pair[StateSet, StateSet]] {
	return func(yield func(Label, util.Pair[StateSet, StateSet]) bool) {
		for left := range s.All() {
			right, ok := other.Get(left.Component())
			if !ok {
				continue
			}
			rightParams := make(map[Label]StateSet)
			for label, states := range right.Params() {
				rightParams[label] = states
			}
			for label, leftStates := range left.Params() {
				rightStates, ok := rightParams[label]
				if !ok {
					continue
				}
				if !yield(label, util.NewPair(leftStates, rightStates)) {
					return
				}
			}
		}
	}
}

func (s ConstructorSet[C]) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	i := 0
	for c := range s.All() {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
		i++
	}
	sb.WriteString("}")
	return sb.String()
}
