package frontend

import (
	"strings"
	"testing"

	"github.com/cottand/biunify/auto"
	"github.com/cottand/biunify/auto/polar"
	"github.com/cottand/biunify/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, src string) (Ty, error) {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return ParseType(&node)
}

func TestParseType(t *testing.T) {
	testCases := []struct {
		src      string
		expected Ty
	}{
		{src: "empty", expected: polar.Empty[types.Cons, string]()},
		{src: "Int", expected: types.Tag[string]("Int")},
		{src: "{tag: Str}", expected: types.Tag[string]("Str")},
		{src: "{var: a}", expected: polar.Var[types.Cons]("a")},
		{
			src:      "{union: [Int, Str, {var: a}]}",
			expected: polar.Union(types.Tag[string]("Int"), types.Tag[string]("Str"), polar.Var[types.Cons]("a")),
		},
		{
			src:      "{fn: {dom: Int, rng: {var: a}}}",
			expected: types.Func(types.Tag[string]("Int"), polar.Var[types.Cons]("a")),
		},
		{
			src:      "{rec: {record: {head: Int, tail: {ref: 0}}}}",
			expected: polar.Rec(types.Record(map[string]Ty{"head": types.Tag[string]("Int"), "tail": polar.Ref[types.Cons, string](0)})),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			ty, err := parse(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.expected.String(), ty.String())
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	testCases := []struct {
		src         string
		errContains string
	}{
		{src: "{ref: 0}", errContains: "ref 0 needs 1 enclosing rec, found 0"},
		{src: "{rec: {ref: 1}}", errContains: "ref 1 needs 2 enclosing rec, found 1"},
		{src: "{ref: x}", errContains: "ref expects a binder index"},
		{src: "{fn: {dom: Int}}", errContains: "fn expects exactly dom and rng"},
		{src: "{fn: {dom: Int, rng: Int, extra: Int}}", errContains: "fn expects exactly dom and rng"},
		{src: "{union: Int}", errContains: "union expects a list"},
		{src: "{tag: Int, var: a}", errContains: "expected exactly one of"},
		{src: "{list: Int}", errContains: `unknown type form "list"`},
		{src: "[Int]", errContains: "expected a type"},
		{src: "{var: [a]}", errContains: "a variable needs a name"},
		{src: "{record: {x: Int, x: Str}}", errContains: "line 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			var node yaml.Node
			if err := yaml.Unmarshal([]byte(tc.src), &node); err != nil {
				// yaml.v3 itself rejects some malformed documents
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			_, err := ParseType(&node)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

const identityFile = `
constraints:
  # id: a -> a, applied to Int
  - pos: {fn: {dom: {var: a}, rng: {var: a}}}
    neg: {fn: {dom: Int, rng: {var: r}}}
  - pos: {var: r}
    neg: %s
`

func TestDecodeAndCheck(t *testing.T) {
	testCases := []struct {
		name      string
		use       string
		expectErr bool
	}{
		{name: "result used as Int", use: "Int"},
		{name: "result used as Str", use: "Str", expectErr: true},
		{name: "result unused", use: "empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Decode(strings.NewReader(strings.Replace(identityFile, "%s", tc.use, 1)))
			require.NoError(t, err)
			require.Len(t, f.Constraints, 2)
			assert.Equal(t, 4, f.Constraints[0].Line)

			s := f.Build()
			assert.Len(t, s.Roots(), 4)
			err = s.Check()
			if tc.expectErr {
				assert.ErrorIs(t, err, auto.ErrInadmissible)
				return
			}
			require.NoError(t, err)

			r, ok := s.Variable("r")
			require.True(t, ok)
			_, isInt := s.Automaton.State(r.Pos).Cons.Get("tag:Int")
			assert.True(t, isInt, "Int flows out of r")
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name, src, errContains string
	}{
		{name: "empty file", src: "", errContains: "empty constraint file"},
		{name: "missing neg", src: "constraints: [{pos: Int}]", errContains: "constraint 0: both pos and neg are required"},
		{name: "bad type", src: "constraints: [{pos: Int, neg: {foo: 1}}]", errContains: "constraint 0: neg"},
		{name: "not yaml", src: "constraints: [", errContains: "could not parse constraint file"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}
