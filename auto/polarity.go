package auto

// Polarity tells whether a state sits in a producer (Pos) or acceptor (Neg) position.
//
// A Pos state describes what a value may be (a lower bound), a Neg state describes
// what a context accepts (an upper bound).
type Polarity int8

const (
	Neg Polarity = -1
	Pos Polarity = 1
)

func (p Polarity) Negate() Polarity {
	if p == Pos {
		return Neg
	}
	return Pos
}

// Compose returns the polarity of a position with variance other nested
// inside a position of polarity p
func (p Polarity) Compose(other Polarity) Polarity {
	if p == Pos {
		return other
	}
	return other.Negate()
}

func (p Polarity) String() string {
	switch p {
	case Pos:
		return "+"
	case Neg:
		return "-"
	default:
		return "?"
	}
}

// Orient returns (x, y) for Pos and (y, x) for Neg, so that the result is
// in producer, acceptor order when x and y are given in the order of a position of polarity p.
func Orient[T any](p Polarity, x, y T) (T, T) {
	if p == Pos {
		return x, y
	}
	return y, x
}
