package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/getmockd/arbitrary/pkg/arbitrary"
	"github.com/getmockd/arbitrary/pkg/config"
	"github.com/getmockd/arbitrary/pkg/logging"
)

// ErrUnsupportedStep is returned for a step op the generator type does not have.
var ErrUnsupportedStep = errors.New("unsupported step")

// Builder turns generator definitions into generator chains. Compiled
// expressions are shared by every chain a Builder builds. A Builder is safe
// for concurrent use.
type Builder struct {
	logger   *slog.Logger
	opts     []arbitrary.Option
	programs *programCache
}

// NewBuilder returns a Builder whose refinement steps get opts. The logger
// also receives constraint failures at debug level.
func NewBuilder(logger *slog.Logger, opts ...arbitrary.Option) *Builder {
	logger = logging.OrNop(logger)
	all := append([]arbitrary.Option{arbitrary.WithLogger(logger)}, opts...)
	return &Builder{logger: logger, opts: all, programs: newProgramCache()}
}

// Build builds def on backend. Shape steps are applied in order, then the
// value is lifted to any (chars become one-character strings, UUIDs their
// canonical string), then refinement steps are applied in order. def is
// expected to have passed config validation; malformed steps still fail
// here rather than produce a wrong domain.
func (b *Builder) Build(def config.GeneratorDef, backend arbitrary.Backend) (arbitrary.Generator[any], error) {
	shapes, refinements := splitSteps(def.Steps)

	var (
		g   arbitrary.Generator[any]
		err error
	)
	switch def.Type {
	case config.TypeInt8:
		g, err = buildInteger(arbitrary.Int8s(backend), shapes)
	case config.TypeInt16:
		g, err = buildInteger(arbitrary.Int16s(backend), shapes)
	case config.TypeInt32:
		g, err = buildInteger(arbitrary.Int32s(backend), shapes)
	case config.TypeInt64:
		g, err = buildInteger(arbitrary.Int64s(backend), shapes)
	case config.TypeInt:
		g, err = buildInteger(arbitrary.Ints(backend), shapes)
	case config.TypeChar:
		g, err = buildChar(arbitrary.Characters(backend), shapes)
	case config.TypeString:
		g, err = b.buildString(def.Name, arbitrary.Strings(backend), shapes)
	case config.TypeUUID:
		if len(shapes) > 0 {
			err = stepError(shapes[0], "uuid")
			break
		}
		g = arbitrary.Map[uuid.UUID, any](arbitrary.UUIDs(backend), func(u uuid.UUID) any { return u.String() })
	default:
		err = fmt.Errorf("unknown generator type %q", def.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("generator %q: %w", def.Name, err)
	}

	opts := append(append([]arbitrary.Option{}, b.opts...), arbitrary.WithName(def.Name), arbitrary.WithBackend(backend))
	for _, s := range refinements {
		g, err = b.refine(g, s, opts)
		if err != nil {
			return nil, fmt.Errorf("generator %q: %s: %w", def.Name, s.Op, err)
		}
	}

	b.logger.Debug("built generator",
		"name", def.Name,
		"type", def.Type,
		"shapes", len(shapes),
		"refinements", len(refinements),
	)
	return g, nil
}

// splitSteps splits steps at the first refinement op.
func splitSteps(steps []config.Step) (shapes, refinements []config.Step) {
	for i, s := range steps {
		if config.IsRefinement(s.Op) {
			return steps[:i], steps[i:]
		}
	}
	return steps, nil
}

func stepError(s config.Step, t config.GeneratorType) error {
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedStep, s.Op, t)
}

func buildInteger[T arbitrary.Integer](g *arbitrary.IntGenerator[T], steps []config.Step) (arbitrary.Generator[any], error) {
	var err error
	for _, s := range steps {
		switch s.Op {
		case config.OpRange:
			var lo, hi T
			if lo, hi, err = narrowRange[T](s); err == nil {
				g, err = g.WithRange(lo, hi)
			}
		case config.OpPositive:
			g = g.Positive()
		case config.OpNegative:
			g = g.Negative()
		case config.OpEven:
			g = g.Even()
		case config.OpOdd:
			g = g.Odd()
		case config.OpGTE, config.OpLTE:
			var v T
			if v, err = narrowValue[T](s); err == nil {
				if s.Op == config.OpGTE {
					g = g.GreaterOrEqual(v)
				} else {
					g = g.LessOrEqual(v)
				}
			}
		case config.OpASCII:
			g = g.ASCII()
		default:
			err = fmt.Errorf("%w: %s on integers", ErrUnsupportedStep, s.Op)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Op, err)
		}
	}
	return arbitrary.Map[T, any](g, func(v T) any { return v }), nil
}

// narrow converts v to T, failing when it does not fit.
func narrow[T arbitrary.Integer](v int64) (T, error) {
	out := T(v)
	if int64(out) != v {
		return 0, fmt.Errorf("%w: %d does not fit %T", arbitrary.ErrInvalidConfiguration, v, out)
	}
	return out, nil
}

func narrowRange[T arbitrary.Integer](s config.Step) (lo, hi T, err error) {
	if s.Min == nil || s.Max == nil {
		return 0, 0, fmt.Errorf("%w: requires both min and max", arbitrary.ErrInvalidConfiguration)
	}
	if lo, err = narrow[T](*s.Min); err != nil {
		return 0, 0, err
	}
	if hi, err = narrow[T](*s.Max); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func narrowValue[T arbitrary.Integer](s config.Step) (T, error) {
	if s.Value == nil {
		return 0, fmt.Errorf("%w: requires value", arbitrary.ErrInvalidConfiguration)
	}
	return narrow[T](*s.Value)
}

func buildChar(g *arbitrary.CharGenerator, steps []config.Step) (arbitrary.Generator[any], error) {
	var err error
	for _, s := range steps {
		switch s.Op {
		case config.OpRange:
			var lo, hi int32
			if lo, hi, err = narrowRange[int32](s); err == nil {
				g, err = g.WithRange(lo, hi)
			}
		case config.OpAlpha:
			g = g.Alpha()
		case config.OpNumeric:
			g = g.Numeric()
		case config.OpAlphaNumeric:
			g = g.AlphaNumeric()
		case config.OpASCII:
			g = g.ASCII()
		case config.OpUppercase:
			g = g.Uppercase()
		case config.OpLowercase:
			g = g.Lowercase()
		case config.OpHangul:
			g = g.Hangul()
		case config.OpEmoji:
			g = g.Emoji()
		case config.OpWhitespace:
			g = g.Whitespace()
		default:
			err = stepError(s, config.TypeChar)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Op, err)
		}
	}
	return arbitrary.Map[rune, any](g, func(r rune) any { return string(r) }), nil
}

func (b *Builder) buildString(name string, g *arbitrary.StringGenerator, steps []config.Step) (arbitrary.Generator[any], error) {
	var err error
	for _, s := range steps {
		switch s.Op {
		case config.OpLength:
			var lo, hi int
			if lo, hi, err = narrowRange[int](s); err == nil {
				g, err = g.WithLength(lo, hi)
			}
		case config.OpNumeric:
			g = g.Numeric()
		case config.OpAlphabetic:
			g = g.Alphabetic()
		case config.OpAlphaNumeric:
			g = g.AlphaNumeric()
		case config.OpASCII:
			g = g.ASCII()
		case config.OpHangul:
			g = g.Hangul()
		case config.OpFilterCharacter:
			var pred func(map[string]any) (bool, error)
			if pred, err = b.programs.predicate(s.Expr); err == nil {
				opts := append(append([]arbitrary.Option{}, b.opts...), arbitrary.WithName(name))
				g = g.TryFilterCharacter(func(r rune) (bool, error) { return pred(runeEnv(r)) }, opts...)
			}
		default:
			err = stepError(s, config.TypeString)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Op, err)
		}
	}
	return arbitrary.Map[string, any](g, func(v string) any { return v }), nil
}

func (b *Builder) refine(g arbitrary.Generator[any], s config.Step, opts []arbitrary.Option) (arbitrary.Generator[any], error) {
	switch s.Op {
	case config.OpFilter:
		pred, err := b.programs.predicate(s.Expr)
		if err != nil {
			return nil, err
		}
		return arbitrary.TryFilter(g, func(v any) (bool, error) { return pred(valueEnv(v)) }, opts...), nil

	case config.OpMap:
		f, err := b.programs.transform(s.Expr)
		if err != nil {
			return nil, err
		}
		return arbitrary.TryMap(g, func(v any) (any, error) { return f(valueEnv(v)) }), nil

	case config.OpUnique:
		return arbitrary.UniqueBy(g, uniqueKey, opts...), nil

	case config.OpInjectNull:
		if s.Probability == nil {
			return nil, fmt.Errorf("%w: requires probability", arbitrary.ErrInvalidConfiguration)
		}
		ng, err := arbitrary.InjectNull(g, *s.Probability, opts...)
		if err != nil {
			return nil, err
		}
		return arbitrary.Map(ng, flatten), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStep, s.Op)
	}
}

// uniqueKey keys a value by dynamic type and printed form, so int8(1) and
// "1" do not collide.
func uniqueKey(v any) string {
	return fmt.Sprintf("%T:%v", v, v)
}

func flatten(v *any) any {
	if v == nil {
		return nil
	}
	return *v
}
