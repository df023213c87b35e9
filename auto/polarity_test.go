package auto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarityNegate(t *testing.T) {
	assert.Equal(t, Neg, Pos.Negate())
	assert.Equal(t, Pos, Neg.Negate())
	assert.Equal(t, Pos, Pos.Negate().Negate())
}

func TestPolarityCompose(t *testing.T) {
	testCases := []struct {
		outer, inner, expected Polarity
	}{
		{Pos, Pos, Pos},
		{Pos, Neg, Neg},
		{Neg, Pos, Neg},
		{Neg, Neg, Pos},
	}
	for _, tc := range testCases {
		t.Run(tc.outer.String()+tc.inner.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.outer.Compose(tc.inner))
		})
	}
}

func TestOrient(t *testing.T) {
	x, y := Orient(Pos, "producer", "acceptor")
	assert.Equal(t, "producer", x)
	assert.Equal(t, "acceptor", y)

	x, y = Orient(Neg, "producer", "acceptor")
	assert.Equal(t, "acceptor", x)
	assert.Equal(t, "producer", y)
}

func TestStateSet(t *testing.T) {
	var empty StateSet
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Contains(0))
	assert.Equal(t, "{}", empty.String())

	s := NewStateSet(3, 1)
	u := s.Union(NewStateSet(2, 3))
	assert.Equal(t, []StateID{1, 3}, s.Slice(), "union must not modify its receiver")
	assert.Equal(t, []StateID{1, 2, 3}, u.Slice())
	assert.True(t, u.Contains(2))
	assert.Equal(t, "{#1, #2, #3}", u.String())
	assert.Equal(t, s, s.Union(empty))
	assert.Equal(t, s, empty.Union(s))
}
