package polar

import (
	"testing"

	"github.com/cottand/biunify/auto"
	"github.com/stretchr/testify/assert"
)

type named string

func (n named) String() string { return string(n) }

func (n named) Build(func(auto.Label, Ty[string, string]) auto.StateSet) string {
	return string(n)
}

func TestUnionFoldsRight(t *testing.T) {
	a, b, c := Var[string]("a"), Var[string]("b"), Var[string]("c")

	assert.Equal(t, Empty[string, string](), Union[string, string]())
	assert.Equal(t, a, Union(a))
	assert.Equal(t, Add[string, string]{L: a, R: Add[string, string]{L: b, R: c}}, Union(a, b, c))
}

func TestTyString(t *testing.T) {
	ty := Rec(Union(Cons[string, string](named("Int")), Ref[string, string](0), Var[string]("a")))
	assert.Equal(t, "μ.(Int ⊔ ($0 ⊔ 'a))", ty.String())
}

func TestConstructorsInferFromTyArguments(t *testing.T) {
	var body Ty[string, string] = Ref[string, string](0)
	parts := []Ty[string, string]{Var[string]("a"), body}

	assert.Equal(t, Recursive[string, string]{Body: body}, Rec(body))
	assert.Equal(t, "μ.('a ⊔ $0)", Rec(Union(parts...)).String())
}
