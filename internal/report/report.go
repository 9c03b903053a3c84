// Package report renders diagnostics and pass summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"orm-generator/internal/diagnostic"
	"orm-generator/internal/pipeline"
)

type styles struct {
	title   lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	success lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		success: r.NewStyle().Foreground(lipgloss.Color("82")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Printer writes styled reports to w. Colors are dropped when w is not a
// terminal.
type Printer struct {
	w io.Writer
	s styles
}

// New creates a Printer for w.
func New(w io.Writer) *Printer {
	return &Printer{w: w, s: newStyles(lipgloss.NewRenderer(w))}
}

// Diagnostics prints every diagnostic, errors first.
func (p *Printer) Diagnostics(d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		p.diagnostic(diag)
	}
}

func (p *Printer) diagnostic(d diagnostic.Diagnostic) {
	var sb strings.Builder

	if d.Location.IsValid() {
		sb.WriteString(p.s.dim.Render(d.Location.String() + ":"))
		sb.WriteByte(' ')
	}

	label := d.Severity.String()
	if d.Code != "" {
		label += " " + d.Code
	}

	switch d.Severity {
	case diagnostic.DiagnosticError:
		sb.WriteString(p.s.err.Render(label))
	case diagnostic.DiagnosticWarning:
		sb.WriteString(p.s.warn.Render(label))
	default:
		sb.WriteString(p.s.dim.Render(label))
	}

	sb.WriteString(": ")
	sb.WriteString(d.Message)

	fmt.Fprintln(p.w, sb.String())

	if len(d.Suggestions) > 0 {
		fmt.Fprintln(p.w, p.s.dim.Render("    did you mean: "+strings.Join(d.Suggestions, ", ")+"?"))
	}
}

// Written reports a file written by a pass.
func (p *Printer) Written(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.s.success.Render("wrote"), path)
}

// Removed reports a retired file that was deleted.
func (p *Printer) Removed(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.s.warn.Render("removed"), path)
}

// Stale reports a generated file that does not match the current models.
func (p *Printer) Stale(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.s.err.Render("stale"), path)
}

// Summary is the tally of one pass.
type Summary struct {
	Models    int
	Emitted   int
	Unchanged int
	Failed    int
	Retired   int
	Errors    int
	Infos     int
}

// Summarize counts the outcome of res.
func Summarize(res *pipeline.Result) Summary {
	fresh := len(res.Fresh())

	return Summary{
		Models:    len(res.Outputs) + len(res.Failed),
		Emitted:   fresh,
		Unchanged: len(res.Outputs) - fresh,
		Failed:    len(res.Failed),
		Retired:   len(res.Retired),
		Errors:    len(res.Diagnostics.Errors),
		Infos:     len(res.Diagnostics.Infos) + len(res.Diagnostics.Warnings),
	}
}

// Summary prints a one-line tally, e.g.
// "3 models: 2 emitted, 1 unchanged, 0 failed, 0 retired; 0 errors, 1 note".
func (p *Printer) Summary(s Summary) {
	line := fmt.Sprintf("%s: %d emitted, %d unchanged, %d failed, %d retired",
		plural(s.Models, "model"), s.Emitted, s.Unchanged, s.Failed, s.Retired)

	notes := fmt.Sprintf("%s, %s", plural(s.Errors, "error"), plural(s.Infos, "note"))

	status := p.s.success.Render(notes)
	if s.Errors > 0 {
		status = p.s.err.Render(notes)
	}

	fmt.Fprintf(p.w, "%s; %s\n", p.s.title.Render(line), status)
}

// Result prints the diagnostics of res followed by its summary.
func (p *Printer) Result(res *pipeline.Result) {
	p.Diagnostics(res.Diagnostics)
	p.Summary(Summarize(res))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}

	return fmt.Sprintf("%d %ss", n, noun)
}
