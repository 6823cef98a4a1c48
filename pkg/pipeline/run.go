package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/getmockd/arbitrary/pkg/arbitrary"
	"github.com/getmockd/arbitrary/pkg/config"
	"github.com/getmockd/arbitrary/pkg/logging"
)

// DefaultCount is the number of samples drawn per generator when
// RunOptions.Count is zero.
const DefaultCount = 10

// RunOptions control a batch run.
type RunOptions struct {
	// Names selects generators. Empty means all, in document order.
	Names []string

	// Count is the number of samples per generator.
	Count int

	// Seed overrides the document seed when non-nil.
	Seed *uint64

	// MaxTries overrides the document retry budget when positive.
	MaxTries int

	// Concurrency limits how many generators sample at once. Zero means
	// GOMAXPROCS.
	Concurrency int

	Logger   *slog.Logger
	Observer arbitrary.Observer
}

// Result holds the samples of one generator. Injected nulls are nil.
type Result struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// SampleN draws n values from g, checking ctx between draws.
func SampleN(ctx context.Context, g arbitrary.Generator[any], n int) ([]any, error) {
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		v, err := g.Sample()
		if err != nil {
			return out, fmt.Errorf("sample %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Run samples the selected generators of doc. Generator i of the document
// draws from its own backend seeded with seed+i, so a given seed yields the
// same values regardless of selection or concurrency. Results are in
// document order.
func Run(ctx context.Context, doc *config.Document, opts RunOptions) ([]Result, error) {
	logger := logging.OrNop(opts.Logger)

	defs, err := selectGenerators(doc, opts.Names)
	if err != nil {
		return nil, err
	}

	seed := doc.Seed
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	maxTries := doc.MaxTries
	if opts.MaxTries > 0 {
		maxTries = opts.MaxTries
	}
	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	builderOpts := []arbitrary.Option{arbitrary.WithMaxTries(maxTries)}
	if opts.Observer != nil {
		builderOpts = append(builderOpts, arbitrary.WithObserver(opts.Observer))
	}
	builder := NewBuilder(logger, builderOpts...)

	gens := make([]arbitrary.Generator[any], len(defs))
	for i, d := range defs {
		backend := arbitrary.NewSeededBackend(seed + uint64(d.index))
		if gens[i], err = builder.Build(d.def, backend); err != nil {
			return nil, err
		}
	}

	logger.Info("sampling",
		"generators", len(defs),
		"count", count,
		"seed", seed,
		"concurrency", limit,
	)
	start := time.Now()

	results := make([]Result, len(defs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, d := range defs {
		eg.Go(func() error {
			values, err := SampleN(egCtx, gens[i], count)
			if err != nil {
				return fmt.Errorf("generator %q: %w", d.def.Name, err)
			}
			results[i] = Result{Name: d.def.Name, Values: values}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("sampling finished", "duration", time.Since(start))
	return results, nil
}

type indexedDef struct {
	index int
	def   config.GeneratorDef
}

// selectGenerators returns the named definitions in document order along
// with their document index.
func selectGenerators(doc *config.Document, names []string) ([]indexedDef, error) {
	if len(names) == 0 {
		out := make([]indexedDef, len(doc.Generators))
		for i, def := range doc.Generators {
			out[i] = indexedDef{index: i, def: def}
		}
		return out, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := doc.Generator(n); !ok {
			return nil, fmt.Errorf("unknown generator %q", n)
		}
		want[n] = true
	}
	var out []indexedDef
	for i, def := range doc.Generators {
		if want[def.Name] {
			out = append(out, indexedDef{index: i, def: def})
		}
	}
	return out, nil
}
