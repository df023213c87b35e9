// Package frontend reads constraint files: YAML documents listing pairs of type
// expressions, and solves them.
//
// A constraint file looks like
//
//	constraints:
//	  - pos: {fn: {dom: Int, rng: {var: a}}}
//	    neg: {fn: {dom: {var: b}, rng: Int}}
//
// Type expressions are written as
//
//	empty                      the empty type
//	Int                        any other scalar is a tag
//	{tag: Int}
//	{var: a}                   a free variable, shared across the whole file
//	{union: [ty, ...]}
//	{rec: ty}                  a recursive binder
//	{ref: 0}                   the innermost enclosing binder
//	{fn: {dom: ty, rng: ty}}
//	{record: {field: ty, ...}}
package frontend

import (
	"io"

	"github.com/cottand/biunify/auto/polar"
	"github.com/cottand/biunify/internal/log"
	"github.com/cottand/biunify/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "frontend")

type Ty = polar.Ty[types.Cons, string]

// Constraint asks for Pos to be a subtype of Neg
type Constraint struct {
	Pos, Neg Ty
	// Line is where the constraint starts in its file
	Line int
}

type File struct {
	Constraints []Constraint
}

type fileDoc struct {
	Constraints []constraintDoc `yaml:"constraints"`
}

type constraintDoc struct {
	Pos yaml.Node `yaml:"pos"`
	Neg yaml.Node `yaml:"neg"`
}

// Decode reads a constraint file
func Decode(r io.Reader) (*File, error) {
	var doc fileDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty constraint file")
		}
		return nil, errors.Wrap(err, "could not parse constraint file")
	}

	f := &File{}
	for i, c := range doc.Constraints {
		if c.Pos.Kind == 0 || c.Neg.Kind == 0 {
			return nil, errors.Errorf("constraint %d: both pos and neg are required", i)
		}
		pos, err := ParseType(&c.Pos)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d: pos", i)
		}
		neg, err := ParseType(&c.Neg)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d: neg", i)
		}
		f.Constraints = append(f.Constraints, Constraint{Pos: pos, Neg: neg, Line: c.Pos.Line})
	}
	logger.Debug("frontend: decoded constraints", "count", len(f.Constraints))
	return f, nil
}

// ParseType reads one type expression
func ParseType(node *yaml.Node) (Ty, error) {
	return parseType(node, 0)
}

// parseType reads node, inside depth recursive binders
func parseType(node *yaml.Node, depth int) (Ty, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) != 1 {
			return nil, errors.Errorf("line %d: expected a single type", node.Line)
		}
		return parseType(node.Content[0], depth)
	case yaml.ScalarNode:
		if node.Value == "empty" {
			return polar.Empty[types.Cons, string](), nil
		}
		return parseTag(node)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, errors.Errorf("line %d: expected exactly one of tag, var, union, rec, ref, fn or record", node.Line)
		}
		return parseForm(node.Content[0], node.Content[1], depth)
	default:
		return nil, errors.Errorf("line %d: expected a type", node.Line)
	}
}

func parseForm(key, value *yaml.Node, depth int) (Ty, error) {
	switch key.Value {
	case "tag":
		return parseTag(value)
	case "var":
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, errors.Errorf("line %d: a variable needs a name", value.Line)
		}
		return polar.Var[types.Cons](value.Value), nil
	case "union":
		if value.Kind != yaml.SequenceNode {
			return nil, errors.Errorf("line %d: union expects a list of types", value.Line)
		}
		tys := make([]Ty, 0, len(value.Content))
		for _, item := range value.Content {
			ty, err := parseType(item, depth)
			if err != nil {
				return nil, err
			}
			tys = append(tys, ty)
		}
		return polar.Union(tys...), nil
	case "rec":
		body, err := parseType(value, depth+1)
		if err != nil {
			return nil, err
		}
		return polar.Rec(body), nil
	case "ref":
		var index int
		if err := value.Decode(&index); err != nil {
			return nil, errors.Wrapf(err, "line %d: ref expects a binder index", value.Line)
		}
		if index < 0 || index >= depth {
			return nil, errors.Errorf("line %d: ref %d needs %d enclosing rec, found %d", value.Line, index, index+1, depth)
		}
		return polar.Ref[types.Cons, string](index), nil
	case "fn":
		fields, err := parseFields(value, depth)
		if err != nil {
			return nil, err
		}
		dom, okDom := fields["dom"]
		rng, okRng := fields["rng"]
		if !okDom || !okRng || len(fields) != 2 {
			return nil, errors.Errorf("line %d: fn expects exactly dom and rng", value.Line)
		}
		return types.Func(dom, rng), nil
	case "record":
		fields, err := parseFields(value, depth)
		if err != nil {
			return nil, err
		}
		return types.Record(fields), nil
	default:
		return nil, errors.Errorf("line %d: unknown type form %q", key.Line, key.Value)
	}
}

func parseTag(node *yaml.Node) (Ty, error) {
	if node.Kind != yaml.ScalarNode || node.Value == "" {
		return nil, errors.Errorf("line %d: expected a tag name", node.Line)
	}
	return types.Tag[string](node.Value), nil
}

func parseFields(node *yaml.Node, depth int) (map[string]Ty, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: expected a mapping of fields", node.Line)
	}
	fields := make(map[string]Ty, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, ok := fields[name]; ok {
			return nil, errors.Errorf("line %d: duplicate field %q", node.Content[i].Line, name)
		}
		ty, err := parseType(node.Content[i+1], depth)
		if err != nil {
			return nil, err
		}
		fields[name] = ty
	}
	return fields, nil
}
