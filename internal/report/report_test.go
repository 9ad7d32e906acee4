package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/corey/orgscan/internal/domain/bench"
	"github.com/corey/orgscan/internal/ports"
)

func sampleRuns() []ports.AlgorithmRun {
	v := []ports.Violation{
		{Document: "ams.txt", Block: 2, Participants: []string{"Contract with ACME Corp"}},
		{Document: "arb.txt", Block: 7, Participants: []string{"Globex", "second line"}},
	}
	return []ports.AlgorithmRun{
		{Number: 1, Algorithm: "naive-substring", Name: "Nested loop (substring)", Elapsed: 12 * time.Millisecond, TotalBlocks: 1500, Flagged: 2, Violations: v},
		{Number: 2, Algorithm: "aho-corasick", Name: "Aho-Corasick automaton", Elapsed: 3 * time.Millisecond, TotalBlocks: 1500, Flagged: 2, Violations: v},
	}
}

func sampleResult() ports.Result {
	runs := sampleRuns()
	return ports.Result{
		Violations: runs[0].Violations,
		Summary: ports.Summary{
			DocumentsRequested: 3,
			DocumentsRead:      2,
			TotalBlocks:        1500,
			UniqueViolations:   2,
			ViolationPercent:   0.1333,
			TotalElapsed:       15 * time.Millisecond,
			Fastest:            ports.RunRef{Number: 2, Name: "Aho-Corasick automaton", Elapsed: 3 * time.Millisecond},
			Slowest:            ports.RunRef{Number: 1, Name: "Nested loop (substring)", Elapsed: 12 * time.Millisecond},
			SpeedRatio:         4,
		},
	}
}

// =============================================================================
// Console rendering
// =============================================================================

func TestPrinter_FullReport(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, false)

	p.PrintHeader(Header{
		Started:   time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		DenyList:  "deny.txt",
		Terms:     1234,
		Documents: []string{"ams.txt", "arb.txt"},
		Encoding:  "utf-8",
	})
	p.PrintRunStarted(1, 2, "Nested loop (substring)")
	p.PrintRunFinished(sampleRuns()[0])
	p.PrintRuns(sampleRuns())
	p.PrintViolations(sampleResult())
	p.PrintSummary(sampleRuns(), sampleResult().Summary)

	s := out.String()
	assert.Contains(t, s, "2024-03-01 09:30:00")
	assert.Contains(t, s, "deny.txt (1,234 terms)")
	assert.Contains(t, s, "[1/2] Nested loop (substring)...")
	assert.Contains(t, s, "1,500 blocks, 2 violations in 12 ms")
	assert.Contains(t, s, "Violations: 2")
	assert.Contains(t, s, "block 7")
	assert.Contains(t, s, "    Contract with ACME Corp")
	assert.Contains(t, s, "2 of 3")
	assert.Contains(t, s, "0.13%")
	assert.Contains(t, s, "Speed ratio:")
	assert.Contains(t, s, "4x")
	assert.NotContains(t, s, "\033[", "color disabled")

	// Violations are grouped: each document heading appears once.
	assert.Equal(t, 1, strings.Count(s, "\nams.txt\n"))
	assert.Less(t, strings.Index(s, "\nams.txt\n"), strings.Index(s, "\narb.txt\n"))
}

func TestPrinter_TeeIsPlain(t *testing.T) {
	var console, file bytes.Buffer
	p := New(&console, true)
	p.Tee(&file)

	p.PrintViolations(ports.Result{})

	assert.Contains(t, console.String(), "\033[32m")
	assert.Contains(t, file.String(), "No violations found.")
	assert.NotContains(t, file.String(), "\033[")
}

func TestPrinter_Mismatches(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, false)

	p.PrintMismatches("petar", nil)
	p.PrintMismatches("petar", []bench.Mismatch{
		{Document: "a.txt", Block: 3, Automaton: true, AutomatonTerms: []string{"acme corp", "globex"}},
		{Document: "b.txt", Block: 1, Reference: true, ReferenceTerms: []string{"beta"}},
	})

	s := out.String()
	assert.Contains(t, s, "agrees with petar")
	assert.Contains(t, s, "disagrees with petar on 2 blocks")
	assert.Contains(t, s, "a.txt block 3: automaton=true petar=false (automaton: acme corp, globex; petar: -)")
	assert.Contains(t, s, "b.txt block 1: automaton=false petar=true (automaton: -; petar: beta)")
}

func TestPrinter_Warnings(t *testing.T) {
	var out bytes.Buffer
	New(&out, false).PrintWarnings([]*ports.InputUnavailableError{{Document: "gone.txt", Err: os.ErrNotExist}})
	assert.Contains(t, out.String(), `skipped: document "gone.txt" unavailable`)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 ms", FormatDuration(0))
	assert.Equal(t, "1.5 ms", FormatDuration(1500*time.Microsecond))
	assert.Equal(t, "1,234 ms", FormatDuration(1234*time.Millisecond))
}

// =============================================================================
// Export
// =============================================================================

func sampleExport() Export {
	res := sampleResult()
	return Export{
		GeneratedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		DenyList:    "deny.txt",
		Terms:       2,
		Documents:   []string{"ams.txt", "arb.txt"},
		Runs:        sampleRuns(),
		Violations:  res.Violations,
		Summary:     res.Summary,
	}
}

func TestWriteFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteFile(path, sampleExport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "deny.txt", got["deny_list"])
	assert.Len(t, got["violations"], 2)
	assert.NotContains(t, got, "verify")
}

func TestWriteFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yml")
	e := sampleExport()
	e.Verify = &VerifyExport{Backend: "bobusumisu"}
	require.NoError(t, WriteFile(path, e))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 2, got["terms"])
	verify, ok := got["verify"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bobusumisu", verify["backend"])
}

func TestWriteFile_UnknownFormat(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "report.csv"), sampleExport())
	assert.ErrorIs(t, err, ports.ErrConfiguration)
}

// =============================================================================
// Log file
// =============================================================================

func TestCreateLogFile(t *testing.T) {
	started := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	assert.Equal(t, "orgscan_2024-03-01_09-05-07.log", LogFileName(started))

	dir := filepath.Join(t.TempDir(), "logs")
	f, err := CreateLogFile(dir, started)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, filepath.Join(dir, "orgscan_2024-03-01_09-05-07.log"), f.Name())
}
