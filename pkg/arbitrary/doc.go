// Package arbitrary builds, composes and samples constrained random value
// generators.
//
// Generators come in two tiers. Shape generators (IntGenerator,
// CharGenerator, StringGenerator) describe the domain a value is drawn from;
// each shape method returns a new generator whose domain wholly replaces the
// previous one:
//
//	g := arbitrary.Int16s(nil).Positive().Even() // even only, positivity dropped
//
// Refinement functions wrap any Generator and compose in call order:
//
//	ids := arbitrary.Unique(arbitrary.Filter(g, func(v int16) bool { return v%3 == 0 }))
//	maybe, err := arbitrary.InjectNull(ids, 0.1)
//
// Filter and Unique redraw up to DefaultMaxTries times. When the wrapped
// generator is fixed they draw once and fail with a *ConstraintError wrapping
// ErrFixedValueFilterMiss instead of spending the budget.
//
// All randomness comes from a Backend. RandBackend wraps math/rand/v2; use
// NewSeededBackend for reproducible sequences or a scripted Backend in tests.
package arbitrary
