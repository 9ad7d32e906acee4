package bench

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/corey/orgscan/internal/ports"
)

// Aggregate merges the violations of all runs into one list with a single
// entry per (document, block number), keeping the first instance seen, and
// sorts it by document then block number.
//
// Block numbers are only comparable when every run segmented the same
// documents in the same order. Runs that disagree on their document list or
// block total produce a *ports.ConfigurationError.
func Aggregate(runs []ports.AlgorithmRun, documentsRequested int) (ports.Result, error) {
	if err := checkComparable(runs); err != nil {
		return ports.Result{}, err
	}

	seen := make(map[ports.BlockKey]struct{})
	var unique []ports.Violation
	for _, run := range runs {
		for _, v := range run.Violations {
			if _, dup := seen[v.Key()]; dup {
				continue
			}
			seen[v.Key()] = struct{}{}
			unique = append(unique, v)
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].Document != unique[j].Document {
			return unique[i].Document < unique[j].Document
		}
		return unique[i].Block < unique[j].Block
	})

	return ports.Result{
		Violations: unique,
		Summary:    summarize(runs, len(unique), documentsRequested),
	}, nil
}

func checkComparable(runs []ports.AlgorithmRun) error {
	if len(runs) < 2 {
		return nil
	}
	ref := runs[0]
	for _, r := range runs[1:] {
		switch {
		case !slices.Equal(r.Documents, ref.Documents):
			return &ports.ConfigurationError{
				Source: r.Name,
				Err:    fmt.Errorf("run read documents %q, first run read %q", r.Documents, ref.Documents),
			}
		case r.TotalBlocks != ref.TotalBlocks:
			return &ports.ConfigurationError{
				Source: r.Name,
				Err:    fmt.Errorf("run scanned %d blocks, first run scanned %d", r.TotalBlocks, ref.TotalBlocks),
			}
		}
	}
	return nil
}

// errNoRuns is returned by Fastest and Slowest on an empty slice.
var errNoRuns = errors.New("no runs")

func summarize(runs []ports.AlgorithmRun, unique, documentsRequested int) ports.Summary {
	s := ports.Summary{
		DocumentsRequested: documentsRequested,
		UniqueViolations:   unique,
	}
	if len(runs) == 0 {
		return s
	}

	s.TotalBlocks = runs[0].TotalBlocks
	s.DocumentsRead = len(runs[0].Documents)
	if s.TotalBlocks > 0 {
		s.ViolationPercent = float64(unique) / float64(s.TotalBlocks) * 100
	}
	for _, r := range runs {
		s.TotalElapsed += r.Elapsed
	}

	fastest, _ := Fastest(runs)
	slowest, _ := Slowest(runs)
	s.Fastest = ref(fastest)
	s.Slowest = ref(slowest)
	s.SpeedRatio = 1
	if fastest.Elapsed > 0 {
		s.SpeedRatio = float64(slowest.Elapsed) / float64(fastest.Elapsed)
	}
	return s
}

func ref(r ports.AlgorithmRun) ports.RunRef {
	return ports.RunRef{Number: r.Number, Name: r.Name, Elapsed: r.Elapsed}
}

// Fastest returns the run with the smallest elapsed time; ties go to the
// earlier run.
func Fastest(runs []ports.AlgorithmRun) (ports.AlgorithmRun, error) {
	if len(runs) == 0 {
		return ports.AlgorithmRun{}, errNoRuns
	}
	best := runs[0]
	for _, r := range runs[1:] {
		if r.Elapsed < best.Elapsed {
			best = r
		}
	}
	return best, nil
}

// Slowest returns the run with the largest elapsed time; ties go to the
// earlier run.
func Slowest(runs []ports.AlgorithmRun) (ports.AlgorithmRun, error) {
	if len(runs) == 0 {
		return ports.AlgorithmRun{}, errNoRuns
	}
	worst := runs[0]
	for _, r := range runs[1:] {
		if r.Elapsed > worst.Elapsed {
			worst = r
		}
	}
	return worst, nil
}
