package config

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidationError reports a semantic problem at a document path such as
// generators[2].steps[1]. It unwraps to ErrInvalidDefinition.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns ErrInvalidDefinition.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidDefinition
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate runs the semantic checks on an expanded document: version, unique
// generator names, known types, ops valid for the type, shape steps before
// refinement steps, and parameter ranges. Expressions are only checked for
// presence; they are compiled when the generator is built.
func (d *Document) Validate() error {
	if d == nil {
		return invalid("document", "is nil")
	}
	if d.Version != "" && d.Version != CurrentVersion {
		return invalid("version", "unsupported version %q (want %q)", d.Version, CurrentVersion)
	}
	if d.MaxTries < 0 {
		return invalid("maxTries", "must not be negative, got %d", d.MaxTries)
	}
	if len(d.Generators) == 0 {
		return invalid("generators", "at least one generator is required")
	}

	seen := make(map[string]int, len(d.Generators))
	for i := range d.Generators {
		g := &d.Generators[i]
		field := fmt.Sprintf("generators[%d]", i)
		if first, dup := seen[g.Name]; dup {
			return invalid(field+".name", "duplicate generator name %q (first defined at generators[%d])", g.Name, first)
		}
		seen[g.Name] = i
		if err := g.validate(field); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the generator names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Generators))
	for i, g := range d.Generators {
		names[i] = g.Name
	}
	return names
}

// Generator returns the definition named name.
func (d *Document) Generator(name string) (*GeneratorDef, bool) {
	i := slices.IndexFunc(d.Generators, func(g GeneratorDef) bool { return g.Name == name })
	if i < 0 {
		return nil, false
	}
	return &d.Generators[i], true
}

func (g *GeneratorDef) validate(field string) error {
	if strings.TrimSpace(g.Name) == "" {
		return invalid(field+".name", "is required")
	}
	shapes, ok := shapeOps[g.Type]
	if !ok {
		return invalid(field+".type", "unknown generator type %q", g.Type)
	}

	refined := false
	for j := range g.Steps {
		s := &g.Steps[j]
		sf := fmt.Sprintf("%s.steps[%d]", field, j)

		params, isShape := shapes[s.Op]
		if !isShape {
			var isRefinement bool
			params, isRefinement = refinementOps[s.Op]
			if !isRefinement {
				return invalid(sf+".op", "unknown op %q for type %s", s.Op, g.Type)
			}
			refined = true
		} else if refined {
			return invalid(sf+".op", "shape op %q cannot follow a refinement op", s.Op)
		}

		if err := s.validate(sf, g.Type, params); err != nil {
			return err
		}
	}
	return nil
}

func (s *Step) validate(field string, t GeneratorType, params param) error {
	if err := s.checkParams(field, params); err != nil {
		return err
	}

	switch {
	case params&paramRange != 0:
		return checkRange(field, t, s.Op, *s.Min, *s.Max)
	case params&paramValue != 0:
		lo, hi := typeBounds(t)
		if *s.Value < lo || *s.Value > hi {
			return invalid(field+".value", "%d out of range for %s [%d, %d]", *s.Value, t, lo, hi)
		}
	case params&paramProbability != 0:
		p := *s.Probability
		if math.IsNaN(p) || p < 0 || p > 1 {
			return invalid(field+".probability", "must be between 0.0 and 1.0, got %v", p)
		}
	}
	return nil
}

// checkParams rejects missing required and stray parameters.
func (s *Step) checkParams(field string, params param) error {
	present := map[param]bool{
		paramRange:       s.Min != nil || s.Max != nil,
		paramValue:       s.Value != nil,
		paramExpr:        s.Expr != "",
		paramProbability: s.Probability != nil,
	}
	names := map[param]string{
		paramRange:       "min/max",
		paramValue:       "value",
		paramExpr:        "expr",
		paramProbability: "probability",
	}
	for _, p := range []param{paramRange, paramValue, paramExpr, paramProbability} {
		want := params&p != 0
		if want && !present[p] {
			return invalid(field, "%s requires %s", s.Op, names[p])
		}
		if !want && present[p] {
			return invalid(field, "%s does not take %s", s.Op, names[p])
		}
	}
	if params&paramRange != 0 && (s.Min == nil || s.Max == nil) {
		return invalid(field, "%s requires both min and max", s.Op)
	}
	return nil
}

func checkRange(field string, t GeneratorType, op string, lo, hi int64) error {
	if lo > hi {
		return invalid(field, "%s min %d > max %d", op, lo, hi)
	}
	if op == OpLength {
		if lo < 0 {
			return invalid(field+".min", "length must not be negative, got %d", lo)
		}
		return nil
	}
	min, max := typeBounds(t)
	if lo < min || hi > max {
		return invalid(field, "range [%d, %d] exceeds %s bounds [%d, %d]", lo, hi, t, min, max)
	}
	return nil
}

// typeBounds returns the representable values of an integer type, or the
// code point range for char.
func typeBounds(t GeneratorType) (int64, int64) {
	switch t {
	case TypeInt8:
		return math.MinInt8, math.MaxInt8
	case TypeInt16:
		return math.MinInt16, math.MaxInt16
	case TypeInt32:
		return math.MinInt32, math.MaxInt32
	case TypeInt:
		return math.MinInt, math.MaxInt
	case TypeChar:
		return 0, unicode.MaxRune
	default:
		return math.MinInt64, math.MaxInt64
	}
}
