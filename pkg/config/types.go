package config

// CurrentVersion is the document format version written by this module.
const CurrentVersion = "1"

// Document is a generator-definition document.
type Document struct {
	// Version is the document format version. Empty means CurrentVersion.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Seed seeds every generator's backend. Zero means a random seed.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// MaxTries is the retry budget for filter and unique steps.
	// Zero means arbitrary.DefaultMaxTries.
	MaxTries int `json:"maxTries,omitempty" yaml:"maxTries,omitempty"`

	// Include lists glob patterns, relative to the document, of further
	// documents whose generators are appended. "**" matches recursively.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// Generators are the generator definitions in document order.
	Generators []GeneratorDef `json:"generators,omitempty" yaml:"generators,omitempty"`
}

// GeneratorType names the base generator of a definition.
type GeneratorType string

// Generator types.
const (
	TypeInt8   GeneratorType = "int8"
	TypeInt16  GeneratorType = "int16"
	TypeInt32  GeneratorType = "int32"
	TypeInt64  GeneratorType = "int64"
	TypeInt    GeneratorType = "int"
	TypeChar   GeneratorType = "char"
	TypeString GeneratorType = "string"
	TypeUUID   GeneratorType = "uuid"
)

// IsInteger reports whether t is one of the integer widths.
func (t GeneratorType) IsInteger() bool {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64, TypeInt:
		return true
	}
	return false
}

// GeneratorDef defines one named generator: a base type and an ordered list
// of steps. Shape steps come first; refinement steps follow.
type GeneratorDef struct {
	Name  string        `json:"name" yaml:"name"`
	Type  GeneratorType `json:"type" yaml:"type"`
	Steps []Step        `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Step is one shape or refinement operation. Which parameters apply depends
// on Op.
type Step struct {
	Op string `json:"op" yaml:"op"`

	// Min and Max bound range and length steps, inclusive.
	Min *int64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *int64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Value is the bound of gte and lte steps.
	Value *int64 `json:"value,omitempty" yaml:"value,omitempty"`

	// Expr is the expression of filter, map and filterCharacter steps. The
	// current value is bound to "it".
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty"`

	// Probability is the null probability of injectNull steps.
	Probability *float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
}

// Step operations.
const (
	OpRange           = "range"
	OpPositive        = "positive"
	OpNegative        = "negative"
	OpEven            = "even"
	OpOdd             = "odd"
	OpGTE             = "gte"
	OpLTE             = "lte"
	OpASCII           = "ascii"
	OpAlpha           = "alpha"
	OpNumeric         = "numeric"
	OpAlphaNumeric    = "alphaNumeric"
	OpUppercase       = "uppercase"
	OpLowercase       = "lowercase"
	OpHangul          = "hangul"
	OpEmoji           = "emoji"
	OpWhitespace      = "whitespace"
	OpLength          = "length"
	OpAlphabetic      = "alphabetic"
	OpFilterCharacter = "filterCharacter"

	OpFilter     = "filter"
	OpMap        = "map"
	OpUnique     = "unique"
	OpInjectNull = "injectNull"
)

// param is a bit set of the parameters a step op requires.
type param uint8

const (
	paramRange param = 1 << iota
	paramValue
	paramExpr
	paramProbability
)

var integerShapes = map[string]param{
	OpRange:    paramRange,
	OpPositive: 0,
	OpNegative: 0,
	OpEven:     0,
	OpOdd:      0,
	OpGTE:      paramValue,
	OpLTE:      paramValue,
	OpASCII:    0,
}

// shapeOps lists the shape operations of each generator type.
var shapeOps = map[GeneratorType]map[string]param{
	TypeInt8:  integerShapes,
	TypeInt16: integerShapes,
	TypeInt32: integerShapes,
	TypeInt64: integerShapes,
	TypeInt:   integerShapes,
	TypeChar: {
		OpRange:        paramRange,
		OpAlpha:        0,
		OpNumeric:      0,
		OpAlphaNumeric: 0,
		OpASCII:        0,
		OpUppercase:    0,
		OpLowercase:    0,
		OpHangul:       0,
		OpEmoji:        0,
		OpWhitespace:   0,
	},
	TypeString: {
		OpLength:          paramRange,
		OpNumeric:         0,
		OpAlphabetic:      0,
		OpAlphaNumeric:    0,
		OpASCII:           0,
		OpHangul:          0,
		OpFilterCharacter: paramExpr,
	},
	TypeUUID: {},
}

// refinementOps apply to every generator type.
var refinementOps = map[string]param{
	OpFilter:     paramExpr,
	OpMap:        paramExpr,
	OpUnique:     0,
	OpInjectNull: paramProbability,
}

// IsRefinement reports whether op is a refinement operation.
func IsRefinement(op string) bool {
	_, ok := refinementOps[op]
	return ok
}

// ShapeOps returns the shape operations valid for t, or nil for an unknown
// type.
func ShapeOps(t GeneratorType) []string {
	ops, ok := shapeOps[t]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(ops))
	for op := range ops {
		out = append(out, op)
	}
	return out
}
