package build

import "github.com/cottand/biunify/auto"

// PairAllocator allocates the two poles of a fresh type variable
type PairAllocator interface {
	NewVariable() auto.FlowPair
}

// VarResolver decides which flow pair a free variable of type V stands for.
//
// It is implemented by MemoVars and PassThroughVars only.
type VarResolver[V any] interface {
	resolve(alloc PairAllocator, v V) auto.FlowPair
}

var (
	_ VarResolver[string]        = (*MemoVars[string])(nil)
	_ VarResolver[auto.FlowPair] = PassThroughVars{}
)

// MemoVars allocates a fresh pair the first time it sees a variable and reuses it afterwards.
// Sharing one MemoVars across several builds shares their variables.
type MemoVars[V comparable] struct {
	pairs map[V]auto.FlowPair
}

func NewMemoVars[V comparable]() *MemoVars[V] {
	return &MemoVars[V]{pairs: make(map[V]auto.FlowPair)}
}

func (m *MemoVars[V]) resolve(alloc PairAllocator, v V) auto.FlowPair {
	if pair, ok := m.pairs[v]; ok {
		return pair
	}
	pair := alloc.NewVariable()
	m.pairs[v] = pair
	logger.Debug("build: new variable", "var", v, "pair", pair)
	return pair
}

// Pair returns the flow pair allocated for v, if v was seen
func (m *MemoVars[V]) Pair(v V) (auto.FlowPair, bool) {
	pair, ok := m.pairs[v]
	return pair, ok
}

// PassThroughVars is used when variables already are flow pairs, for example
// when their identity was decided by an earlier build
type PassThroughVars struct{}

func (PassThroughVars) resolve(_ PairAllocator, pair auto.FlowPair) auto.FlowPair {
	return pair
}
