// Package report renders scan results for people (console and log file) and
// for machines (JSON or YAML export).
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/corey/orgscan/internal/domain/bench"
	"github.com/corey/orgscan/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

const rule = "════════════════════════════════════════════════════════════"

// palette wraps text in color codes, or passes it through when off.
type palette bool

func (p palette) paint(code, s string) string {
	if !p {
		return s
	}
	return code + s + colorReset
}

func (p palette) bold(s string) string   { return p.paint(colorBold, s) }
func (p palette) red(s string) string    { return p.paint(colorRed, s) }
func (p palette) green(s string) string  { return p.paint(colorGreen, s) }
func (p palette) yellow(s string) string { return p.paint(colorYellow, s) }
func (p palette) cyan(s string) string   { return p.paint(colorCyan, s) }
func (p palette) gray(s string) string   { return p.paint(colorGray, s) }

type sink struct {
	w     io.Writer
	color palette
}

// Printer writes every section to the console and to any teed writers.
// Teed writers never receive color codes. Safe for concurrent use.
type Printer struct {
	mu    sync.Mutex
	sinks []sink
}

// New returns a printer writing to w, colored when color is set.
func New(w io.Writer, color bool) *Printer {
	return &Printer{sinks: []sink{{w: w, color: palette(color)}}}
}

// Tee adds a plain-text copy of all further output.
func (p *Printer) Tee(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sinks = append(p.sinks, sink{w: w})
}

func (p *Printer) section(render func(w io.Writer, c palette)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.sinks {
		render(s.w, s.color)
	}
}

// Header describes the inputs of a scan.
type Header struct {
	Started   time.Time
	DenyList  string
	Terms     int
	Documents []string
	Encoding  string
	Parallel  bool
}

// PrintHeader writes the banner and input statistics.
func (p *Printer) PrintHeader(h Header) {
	p.section(func(w io.Writer, c palette) {
		fmt.Fprintln(w, c.bold(rule))
		fmt.Fprintln(w, c.bold("  Deny-list scan  "+h.Started.Format("2006-01-02 15:04:05")))
		fmt.Fprintln(w, c.bold(rule))
		fmt.Fprintf(w, "Deny-list:  %s (%s terms)\n", c.cyan(h.DenyList), humanize.Comma(int64(h.Terms)))
		fmt.Fprintf(w, "Encoding:   %s\n", h.Encoding)
		mode := "sequential"
		if h.Parallel {
			mode = "parallel"
		}
		fmt.Fprintf(w, "Passes:     %s\n", mode)
		fmt.Fprintf(w, "Documents:  %d\n", len(h.Documents))
		for _, d := range h.Documents {
			fmt.Fprintf(w, "  • %s\n", d)
		}
		fmt.Fprintln(w)
	})
}

// PrintRunStarted announces a pass.
func (p *Printer) PrintRunStarted(number, total int, name string) {
	p.section(func(w io.Writer, c palette) {
		fmt.Fprintf(w, "%s %s...\n", c.gray(fmt.Sprintf("[%d/%d]", number, total)), name)
	})
}

// PrintRunFinished reports one finished pass.
func (p *Printer) PrintRunFinished(run ports.AlgorithmRun) {
	p.section(func(w io.Writer, c palette) {
		flagged := humanize.Comma(int64(run.Flagged))
		if run.Flagged > 0 {
			flagged = c.yellow(flagged)
		}
		fmt.Fprintf(w, "      %s: %s blocks, %s violations in %s\n",
			c.green("done"), humanize.Comma(int64(run.TotalBlocks)), flagged, FormatDuration(run.Elapsed))
	})
}

// PrintRuns writes the per-algorithm results table.
func (p *Printer) PrintRuns(runs []ports.AlgorithmRun) {
	p.section(func(w io.Writer, c palette) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.bold("Results by algorithm"))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "#\tAlgorithm\tTime\tBlocks\tViolations\tBlocks/s\tPer block\t")
		for _, r := range runs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				r.Number, r.Name, FormatDuration(r.Elapsed),
				humanize.Comma(int64(r.TotalBlocks)), humanize.Comma(int64(r.Flagged)),
				humanize.CommafWithDigits(r.BlocksPerSecond(), 0), FormatDuration(r.TimePerBlock()))
		}
		tw.Flush()
	})
}

// PrintViolations lists the unique violations grouped by document, each
// with the block's original lines.
func (p *Printer) PrintViolations(res ports.Result) {
	p.section(func(w io.Writer, c palette) {
		fmt.Fprintln(w)
		if len(res.Violations) == 0 {
			fmt.Fprintln(w, c.green("No violations found."))
			return
		}
		fmt.Fprintln(w, c.bold(c.red(fmt.Sprintf("Violations: %s", humanize.Comma(int64(len(res.Violations)))))))
		doc := ""
		for _, v := range res.Violations {
			if v.Document != doc {
				doc = v.Document
				fmt.Fprintf(w, "\n%s\n", c.cyan(doc))
			}
			fmt.Fprintf(w, "  %s\n", c.yellow(fmt.Sprintf("block %d", v.Block)))
			for _, line := range v.Participants {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	})
}

// PrintSummary writes the final statistics table.
func (p *Printer) PrintSummary(runs []ports.AlgorithmRun, s ports.Summary) {
	p.section(func(w io.Writer, c palette) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.bold(rule))
		fmt.Fprintln(w, c.bold("  Summary"))
		fmt.Fprintln(w, c.bold(rule))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Documents processed:\t%d of %d\n", s.DocumentsRead, s.DocumentsRequested)
		fmt.Fprintf(tw, "Total blocks:\t%s\n", humanize.Comma(int64(s.TotalBlocks)))
		fmt.Fprintf(tw, "Unique violations:\t%s (%s%%)\n", humanize.Comma(int64(s.UniqueViolations)), humanize.CommafWithDigits(s.ViolationPercent, 2))
		fmt.Fprintf(tw, "Total time:\t%s\n", FormatDuration(s.TotalElapsed))
		if len(runs) > 0 {
			fmt.Fprintf(tw, "Fastest:\t%s (%s)\n", s.Fastest.Name, FormatDuration(s.Fastest.Elapsed))
			fmt.Fprintf(tw, "Slowest:\t%s (%s)\n", s.Slowest.Name, FormatDuration(s.Slowest.Elapsed))
			fmt.Fprintf(tw, "Speed ratio:\t%sx\n", humanize.CommafWithDigits(s.SpeedRatio, 2))
		}
		tw.Flush()

		if len(runs) > 0 {
			fmt.Fprintln(w)
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, r := range runs {
				fmt.Fprintf(tw, "  %s\t%s\t%s violations\n", r.Name, FormatDuration(r.Elapsed), humanize.Comma(int64(r.Flagged)))
			}
			tw.Flush()
		}
	})
}

// PrintMismatches reports disagreements between the automaton and a
// reference implementation.
func (p *Printer) PrintMismatches(backend string, ms []bench.Mismatch) {
	p.section(func(w io.Writer, c palette) {
		fmt.Fprintln(w)
		if len(ms) == 0 {
			fmt.Fprintf(w, "%s automaton agrees with %s on every block\n", c.green("verify:"), backend)
			return
		}
		fmt.Fprintf(w, "%s automaton disagrees with %s on %d blocks\n", c.red("verify:"), backend, len(ms))
		for _, m := range ms {
			fmt.Fprintf(w, "  %s block %d: automaton=%t %s=%t (automaton: %s; %s: %s)\n",
				m.Document, m.Block, m.Automaton, backend, m.Reference,
				termList(m.AutomatonTerms), backend, termList(m.ReferenceTerms))
		}
	})
}

func termList(terms []string) string {
	if len(terms) == 0 {
		return "-"
	}
	return strings.Join(terms, ", ")
}

// PrintWarnings lists documents a pass had to skip.
func (p *Printer) PrintWarnings(warnings []*ports.InputUnavailableError) {
	if len(warnings) == 0 {
		return
	}
	p.section(func(w io.Writer, c palette) {
		for _, warn := range warnings {
			fmt.Fprintf(w, "%s %s\n", c.yellow("skipped:"), warn.Error())
		}
	})
}

// FormatDuration renders d in milliseconds, the unit used throughout the
// report, with up to three decimals.
func FormatDuration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	return humanize.CommafWithDigits(ms, 3) + " ms"
}
