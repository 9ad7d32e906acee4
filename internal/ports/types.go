// Package ports defines the contracts between the scanning core and its adapters.
// Domain packages depend only on these types and interfaces, never on concrete
// file, watcher, or reporting implementations.
package ports

import "time"

// Block is a maximal run of non-blank lines in one document.
//
// Number is the global block number for one pass: it starts at 1 and keeps
// increasing across documents, so (Document, Number) identifies the same
// block in every pass over the same ordered document list.
type Block struct {
	Document   string
	Number     int
	Lines      []string // original casing, used for reporting
	Normalized []string // trimmed + lowercased, used for matching
}

// Violation is a block flagged by one matching strategy.
type Violation struct {
	Document     string   `json:"document" yaml:"document"`
	Block        int      `json:"block" yaml:"block"`
	Participants []string `json:"participants" yaml:"participants"`
}

// Key returns the cross-run identity of the violation.
func (v Violation) Key() BlockKey {
	return BlockKey{Document: v.Document, Number: v.Block}
}

// BlockKey identifies a block across passes.
type BlockKey struct {
	Document string
	Number   int
}

// AlgorithmRun is the outcome of one timed pass of one matching strategy.
// It is not modified after the harness returns it.
type AlgorithmRun struct {
	Number      int           `json:"number" yaml:"number"`
	Algorithm   string        `json:"algorithm" yaml:"algorithm"`
	Name        string        `json:"name" yaml:"name"`
	Elapsed     time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	TotalBlocks int           `json:"total_blocks" yaml:"total_blocks"`
	Flagged     int           `json:"flagged" yaml:"flagged"`
	Violations  []Violation   `json:"violations" yaml:"violations"`

	// Documents lists the documents the pass actually read, in order.
	Documents []string `json:"documents" yaml:"documents"`
	// Warnings holds the documents the pass had to skip.
	Warnings []*InputUnavailableError `json:"-" yaml:"-"`
}

// BlocksPerSecond returns the pass throughput, or 0 when nothing was timed.
func (r AlgorithmRun) BlocksPerSecond() float64 {
	if r.TotalBlocks == 0 || r.Elapsed <= 0 {
		return 0
	}
	return float64(r.TotalBlocks) / r.Elapsed.Seconds()
}

// TimePerBlock returns the mean time spent on one block.
func (r AlgorithmRun) TimePerBlock() time.Duration {
	if r.TotalBlocks == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.TotalBlocks)
}

// RunRef names one run inside a Summary.
type RunRef struct {
	Number  int           `json:"number" yaml:"number"`
	Name    string        `json:"name" yaml:"name"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Summary holds the cross-run statistics computed by the aggregator.
type Summary struct {
	DocumentsRequested int           `json:"documents_requested" yaml:"documents_requested"`
	DocumentsRead      int           `json:"documents_read" yaml:"documents_read"`
	TotalBlocks        int           `json:"total_blocks" yaml:"total_blocks"`
	UniqueViolations   int           `json:"unique_violations" yaml:"unique_violations"`
	ViolationPercent   float64       `json:"violation_percent" yaml:"violation_percent"`
	TotalElapsed       time.Duration `json:"total_elapsed_ns" yaml:"total_elapsed_ns"`
	Fastest            RunRef        `json:"fastest" yaml:"fastest"`
	Slowest            RunRef        `json:"slowest" yaml:"slowest"`
	SpeedRatio         float64       `json:"speed_ratio" yaml:"speed_ratio"`
}

// Result is the aggregated output of all runs: the unique violations sorted by
// document then block number, plus summary figures.
type Result struct {
	Violations []Violation `json:"violations" yaml:"violations"`
	Summary    Summary     `json:"summary" yaml:"summary"`
}
