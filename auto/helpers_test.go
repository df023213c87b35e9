package auto

import (
	"iter"
	"sort"
	"strings"
)

type testLabel struct {
	name string
	pol  Polarity
}

func (l testLabel) Polarity() Polarity { return l.pol }
func (l testLabel) String() string     { return l.name }

var (
	domLabel  = testLabel{name: "dom", pol: Neg}
	rngLabel  = testLabel{name: "rng", pol: Pos}
	nextLabel = testLabel{name: "next", pol: Pos}
)

// testCons is a constructor whose component is its name. Constructors of the
// same name are ordered, others are not.
type testCons struct {
	name   string
	fields map[testLabel]StateSet
}

func tag(name string) testCons {
	return testCons{name: name}
}

func fn(dom, rng StateID) testCons {
	return testCons{name: "fn", fields: map[testLabel]StateSet{
		domLabel: NewStateSet(dom),
		rngLabel: NewStateSet(rng),
	}}
}

func list(next StateID) testCons {
	return testCons{name: "list", fields: map[testLabel]StateSet{nextLabel: NewStateSet(next)}}
}

func (c testCons) Component() string         { return c.name }
func (c testCons) Leq(other testCons) bool   { return c.name == other.name }
func (c testCons) Join(other testCons, _ Polarity) testCons {
	fields := make(map[testLabel]StateSet, len(c.fields))
	for label, states := range c.fields {
		fields[label] = states
	}
	for label, states := range other.fields {
		fields[label] = fields[label].Union(states)
	}
	return testCons{name: c.name, fields: fields}
}

func (c testCons) labels() []testLabel {
	labels := make([]testLabel, 0, len(c.fields))
	for label := range c.fields {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].name < labels[j].name })
	return labels
}

func (c testCons) Params() iter.Seq2[Label, StateSet] {
	return func(yield func(Label, StateSet) bool) {
		for _, label := range c.labels() {
			if !yield(label, c.fields[label]) {
				return
			}
		}
	}
}

func (c testCons) String() string {
	if len(c.fields) == 0 {
		return c.name
	}
	var params []string
	for _, label := range c.labels() {
		params = append(params, label.name+"="+c.fields[label].String())
	}
	return c.name + "(" + strings.Join(params, ", ") + ")"
}

// withCons allocates a state of polarity pol holding cons
func withCons(a *Automaton[testCons], pol Polarity, cons ...testCons) StateID {
	id := a.NewState(pol)
	for _, c := range cons {
		a.AddConstructor(pol, id, c)
	}
	return id
}

// occurrence allocates a state standing for one occurrence of v at polarity pol
func occurrence(a *Automaton[testCons], pol Polarity, v FlowPair) StateID {
	id := a.NewState(pol)
	a.MergeFlow(pol, id, v.Get(pol))
	return id
}
