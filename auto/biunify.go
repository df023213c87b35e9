package auto

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
)

// ErrInadmissible is returned when a constraint has no subtyping derivation
var ErrInadmissible = errors.New("biunify: constraint is not admissible")

// Constraint asks for the type of Pos to be a subtype of the type of Neg
type Constraint struct {
	Pos, Neg StateID
}

// statePair is a constraint already visited by a biunifier
type statePair struct {
	pos, neg StateID
}

func (p statePair) Hash() uint64 {
	return uint64(uint32(p.pos))<<32 | uint64(uint32(p.neg))
}

// biunifier holds the state of a single BiunifyAll call
type biunifier[C Constructor[C]] struct {
	auto *Automaton[C]
	seen *set.HashSet[statePair, uint64]

	// calls counts every invocation of rec, memoised or not
	calls int
}

func (a *Automaton[C]) newBiunifier() *biunifier[C] {
	return &biunifier[C]{
		auto: a,
		seen: set.NewHashSet[statePair, uint64](20),
	}
}

// Biunify solves the constraint qp ≤ qn, where qp is a Pos state and qn a Neg one.
//
// On success the automaton carries every variable identification the constraint implies.
// On failure it returns ErrInadmissible; merges done before the failure was found are kept.
func (a *Automaton[C]) Biunify(qp, qn StateID) error {
	return a.BiunifyAll(Constraint{Pos: qp, Neg: qn})
}

// BiunifyAll solves constraints left to right, stopping at the first failure.
// Constraints share one memo of visited pairs.
func (a *Automaton[C]) BiunifyAll(constraints ...Constraint) error {
	b := a.newBiunifier()
	for i, c := range constraints {
		if err := b.rec(c.Pos, c.Neg); err != nil {
			logger.Debug("biunify: constraint failed", "index", i, "pos", c.Pos, "neg", c.Neg, "calls", b.calls)
			return err
		}
	}
	logger.Debug("biunify: done", "constraints", len(constraints), "calls", b.calls, "visited", b.seen.Size())
	return nil
}

func (b *biunifier[C]) rec(qp, qn StateID) error {
	b.calls++
	b.auto.expectPolarity(Pos, qp)
	b.auto.expectPolarity(Neg, qn)

	if !b.seen.Insert(statePair{pos: qp, neg: qn}) {
		return nil
	}
	logger.Debug("biunify: visiting", "pos", qp, "neg", qn)

	pos, neg := b.auto.get(qp), b.auto.get(qn)
	for l := range pos.cons.All() {
		for r := range neg.cons.All() {
			if !l.Leq(r) {
				logger.Debug("biunify: constructor mismatch", "pos", qp, "neg", qn, "lhs", l, "rhs", r)
				return ErrInadmissible
			}
		}
	}

	// whatever flows into qn now also flows from qp, and the other way around
	for _, to := range neg.flow.Slice() {
		b.auto.Merge(Pos, to, qp)
	}
	for _, from := range b.auto.get(qp).flow.Slice() {
		b.auto.Merge(Neg, from, qn)
	}

	posCons, negCons := b.auto.get(qp).cons, b.auto.get(qn).cons
	for label, fields := range posCons.Intersection(negCons) {
		ps, ns := Orient(label.Polarity(), fields.Fst, fields.Snd)
		for jp := range ps.All() {
			for jn := range ns.All() {
				if err := b.rec(jp, jn); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
