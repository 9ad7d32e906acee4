package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corey/orgscan/internal/domain/bench"
	"github.com/corey/orgscan/internal/ports"
)

// Export is the machine-readable form of one scan.
type Export struct {
	GeneratedAt time.Time            `json:"generated_at" yaml:"generated_at"`
	DenyList    string               `json:"deny_list" yaml:"deny_list"`
	Terms       int                  `json:"terms" yaml:"terms"`
	Documents   []string             `json:"documents" yaml:"documents"`
	Runs        []ports.AlgorithmRun `json:"runs" yaml:"runs"`
	Violations  []ports.Violation    `json:"violations" yaml:"violations"`
	Summary     ports.Summary        `json:"summary" yaml:"summary"`
	Verify      *VerifyExport        `json:"verify,omitempty" yaml:"verify,omitempty"`
}

// VerifyExport records a cross-check against a reference matcher.
type VerifyExport struct {
	Backend    string           `json:"backend" yaml:"backend"`
	Mismatches []bench.Mismatch `json:"mismatches" yaml:"mismatches"`
}

// WriteFile writes e to path as JSON (.json) or YAML (.yaml, .yml).
func WriteFile(path string, e Export) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(e, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(e)
	default:
		return &ports.ConfigurationError{Source: "output", Err: fmt.Errorf("unsupported report format %q", path)}
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// LogFileName returns the run log name for a scan started at t.
func LogFileName(t time.Time) string {
	return "orgscan_" + t.Format("2006-01-02_15-04-05") + ".log"
}

// CreateLogFile creates the run log in dir, creating dir if needed.
func CreateLogFile(dir string, started time.Time) (*os.File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, LogFileName(started)))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return f, nil
}
