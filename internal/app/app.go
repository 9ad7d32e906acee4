// Package app wires together all adapters and domain logic.
// It runs one complete scan (load terms, time every matcher, aggregate,
// report) and the watch loop that repeats it when inputs change.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/corey/orgscan/internal/adapters/ahocorasick"
	"github.com/corey/orgscan/internal/adapters/textfile"
	"github.com/corey/orgscan/internal/config"
	"github.com/corey/orgscan/internal/domain/bench"
	"github.com/corey/orgscan/internal/domain/matcher"
	"github.com/corey/orgscan/internal/domain/termset"
	"github.com/corey/orgscan/internal/logging"
	"github.com/corey/orgscan/internal/ports"
	"github.com/corey/orgscan/internal/report"
)

// ErrVerifyMismatch is returned by Scan when the automaton and the reference
// matcher disagree on at least one block.
var ErrVerifyMismatch = errors.New("automaton disagrees with reference matcher")

// Config holds the dependencies of an App.
type Config struct {
	Settings *config.Config
	Stdout   io.Writer // defaults to os.Stdout
	Stderr   io.Writer // console log events; defaults to os.Stderr
	Color    bool
}

// App is the top-level container wiring all components together.
type App struct {
	Settings   *config.Config
	Reader     *textfile.Reader // documents, in the configured charset
	DenyReader *textfile.Reader // deny-list, always UTF-8
	Watcher    ports.Watcher    // created on first Watch when nil

	stdout io.Writer
	stderr io.Writer
	color  bool

	// Now is the wall clock; tests may replace it.
	Now func() time.Time
}

// Outcome is everything one scan produced.
type Outcome struct {
	Started    time.Time
	Terms      int
	Runs       []ports.AlgorithmRun
	Result     ports.Result
	Mismatches []bench.Mismatch
	LogFile    string
}

// New creates an App. It fails only on settings that make every scan
// impossible, such as an unknown document encoding.
func New(cfg Config) (*App, error) {
	if cfg.Settings == nil {
		return nil, fmt.Errorf("settings required")
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	reader, err := textfile.NewReader(cfg.Settings.Encoding)
	if err != nil {
		return nil, err
	}
	denyReader, err := textfile.NewReader("utf-8")
	if err != nil {
		return nil, err
	}
	return &App{
		Settings:   cfg.Settings,
		Reader:     reader,
		DenyReader: denyReader,
		stdout:     cfg.Stdout,
		stderr:     cfg.Stderr,
		color:      cfg.Color,
		Now:        time.Now,
	}, nil
}

// LoadTerms reads and normalizes the deny-list.
func (a *App) LoadTerms() (*termset.TermSet, error) {
	return termset.Load(a.DenyReader, a.Settings.DenyList)
}

// Scan performs one complete, independent scan: the deny-list is reloaded
// and the automaton rebuilt, then every matcher makes one timed pass.
func (a *App) Scan(ctx context.Context) (*Outcome, error) {
	s := a.Settings
	out := &Outcome{Started: a.Now()}

	ts, err := a.LoadTerms()
	if err != nil {
		return nil, err
	}
	out.Terms = ts.Len()

	var ref ports.ReferenceMatcher
	if s.Verify != "" {
		if ref, err = ahocorasick.New(s.Verify, ts.Terms()); err != nil {
			return nil, err
		}
	}

	printer := report.New(a.stdout, a.color)
	if s.LogFile {
		f, err := report.CreateLogFile(s.LogDir, out.Started)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		out.LogFile = f.Name()
		printer.Tee(f)

		saved := logging.Logger
		if err := logging.Configure(s.LogLevel, a.stderr, f); err != nil {
			return nil, err
		}
		defer func() { logging.Logger = saved }()
	}

	logging.Debug().Int("terms", ts.Len()).Str("deny_list", s.DenyList).Msg("deny-list loaded")
	mctx := matcher.NewContext(ts)
	logging.Debug().Int("states", mctx.Automaton.States()).Msg("automaton built")

	printer.PrintHeader(report.Header{
		Started:   out.Started,
		DenyList:  s.DenyList,
		Terms:     ts.Len(),
		Documents: s.Documents,
		Encoding:  a.Reader.Encoding(),
		Parallel:  s.Parallel,
	})

	kinds := matcher.Kinds()
	h := bench.New(a.Reader, s.Documents, mctx)
	h.OnStart = func(number int, k matcher.Kind) {
		printer.PrintRunStarted(number, len(kinds), k.Title())
	}
	h.OnFinish = func(run ports.AlgorithmRun) {
		for _, w := range run.Warnings {
			logging.Warn().Err(w.Err).Str("path", w.Document).Int("pass", run.Number).Msg("document unavailable, skipped")
		}
		printer.PrintRunFinished(run)
	}

	runs, err := h.RunAll(ctx, kinds, s.Parallel)
	if err != nil {
		return nil, err
	}
	out.Runs = runs

	res, err := bench.Aggregate(runs, len(s.Documents))
	if err != nil {
		return nil, err
	}
	out.Result = res

	if len(runs) > 0 {
		printer.PrintWarnings(runs[0].Warnings)
	}
	printer.PrintRuns(runs)
	printer.PrintViolations(res)
	printer.PrintSummary(runs, res.Summary)

	if ref != nil {
		out.Mismatches = h.Verify(ref)
		printer.PrintMismatches(ref.Name(), out.Mismatches)
		for _, m := range out.Mismatches {
			logging.Error().Str("path", m.Document).Int("block", m.Block).
				Bool("automaton", m.Automaton).Bool(ref.Name(), m.Reference).
				Strs("automaton_terms", m.AutomatonTerms).Strs(ref.Name()+"_terms", m.ReferenceTerms).
				Msg("verification mismatch")
		}
	}

	if s.Output != "" {
		e := report.Export{
			GeneratedAt: out.Started,
			DenyList:    s.DenyList,
			Terms:       ts.Len(),
			Documents:   s.Documents,
			Runs:        runs,
			Violations:  res.Violations,
			Summary:     res.Summary,
		}
		if ref != nil {
			e.Verify = &report.VerifyExport{Backend: ref.Name(), Mismatches: out.Mismatches}
		}
		if err := report.WriteFile(s.Output, e); err != nil {
			return out, err
		}
		logging.Info().Str("path", s.Output).Msg("report written")
	}

	if len(out.Mismatches) > 0 {
		return out, ErrVerifyMismatch
	}
	return out, nil
}
