// Package bench runs every matching strategy over the same documents, times
// each full pass, and merges the flagged blocks into one deduplicated result.
package bench

import (
	"context"
	"time"

	"github.com/corey/orgscan/internal/domain/matcher"
	"github.com/corey/orgscan/internal/domain/segment"
	"github.com/corey/orgscan/internal/domain/termset"
	"github.com/corey/orgscan/internal/ports"
	"golang.org/x/sync/errgroup"
)

// Harness owns the inputs shared by all passes. The matcher context (terms
// and automaton) is built once by the caller before any pass runs, so its
// construction is outside every timed region.
type Harness struct {
	Reader    ports.DocumentReader
	Documents []string
	Context   *matcher.Context

	// Now is the wall clock; tests may replace it.
	Now func() time.Time

	// OnStart and OnFinish, when set, are called around each pass.
	// In parallel mode they may be called from several goroutines.
	OnStart  func(number int, k matcher.Kind)
	OnFinish func(run ports.AlgorithmRun)
}

// New returns a harness over documents, read through r, using ctx.
func New(r ports.DocumentReader, documents []string, ctx *matcher.Context) *Harness {
	return &Harness{
		Reader:    r,
		Documents: documents,
		Context:   ctx,
		Now:       time.Now,
	}
}

// Run performs one full timed pass of m. Segmentation and normalization are
// part of the pass and therefore part of the measured time.
func (h *Harness) Run(number int, m matcher.Matcher) ports.AlgorithmRun {
	now := h.Now
	if now == nil {
		now = time.Now
	}

	run := ports.AlgorithmRun{
		Number:    number,
		Algorithm: m.Kind().String(),
		Name:      m.Kind().Title(),
	}

	start := now()
	pass := segment.New(h.Reader).Walk(h.Documents, termset.NewNormalizer(), func(b ports.Block) {
		run.TotalBlocks++
		if m.Match(b.Normalized) {
			run.Flagged++
			run.Violations = append(run.Violations, ports.Violation{
				Document:     b.Document,
				Block:        b.Number,
				Participants: b.Lines,
			})
		}
	})
	run.Elapsed = now().Sub(start)

	run.Documents = pass.Documents
	run.Warnings = pass.Warnings
	return run
}

// RunAll runs one pass per kind and returns the runs in kind order. With
// parallel set the passes run concurrently; each pass still owns its own
// segmenter, normalizer, and buffers. The context only stops passes that have
// not started yet.
func (h *Harness) RunAll(ctx context.Context, kinds []matcher.Kind, parallel bool) ([]ports.AlgorithmRun, error) {
	matchers := make([]matcher.Matcher, len(kinds))
	for i, k := range kinds {
		m, err := matcher.New(k, h.Context)
		if err != nil {
			return nil, err
		}
		matchers[i] = m
	}

	runs := make([]ports.AlgorithmRun, len(matchers))
	runOne := func(i int) {
		if h.OnStart != nil {
			h.OnStart(i+1, matchers[i].Kind())
		}
		runs[i] = h.Run(i+1, matchers[i])
		if h.OnFinish != nil {
			h.OnFinish(runs[i])
		}
	}

	if !parallel {
		for i := range matchers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runOne(i)
		}
		return runs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range matchers {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			runOne(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
