package auto

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// StateID is a handle to a state of an Automaton. Ids are never reused.
type StateID int32

func (id StateID) String() string {
	return fmt.Sprintf("#%d", int32(id))
}

var compareStateID set.CompareFunc[StateID] = cmp.Compare[StateID]

// StateSet is an immutable ordered set of states.
//
// The zero value is the empty set.
type StateSet struct {
	ids *set.TreeSet[StateID]
}

func NewStateSet(ids ...StateID) StateSet {
	return StateSet{ids: set.TreeSetFrom(ids, compareStateID)}
}

// Union returns a new set with the states of both s and other
func (s StateSet) Union(other StateSet) StateSet {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	ids := s.Slice()
	ids = append(ids, other.Slice()...)
	return NewStateSet(ids...)
}

func (s StateSet) Len() int {
	if s.ids == nil {
		return 0
	}
	return s.ids.Size()
}

func (s StateSet) Contains(id StateID) bool {
	return s.ids != nil && s.ids.Contains(id)
}

// Slice returns the states in ascending order. The slice is owned by the caller.
func (s StateSet) Slice() []StateID {
	if s.ids == nil {
		return nil
	}
	return s.ids.Slice()
}

func (s StateSet) All() iter.Seq[StateID] {
	return func(yield func(StateID) bool) {
		for _, id := range s.Slice() {
			if !yield(id) {
				return
			}
		}
	}
}

func (s StateSet) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	for i, id := range s.Slice() {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(id.String())
	}
	sb.WriteString("}")
	return sb.String()
}
