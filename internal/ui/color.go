package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yeymeap/L-systems/internal/grammar"
	"github.com/yeymeap/L-systems/internal/session"
	"github.com/yeymeap/L-systems/internal/turtle"
)

var (
	newStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	stepStyle  = lipgloss.NewStyle().Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Created reports a file or directory that was made.
func Created(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

// Exists reports a file or directory that was already there.
func Exists(w io.Writer, path string) {
	fmt.Fprintln(w, faintStyle.Render("ok ")+"  "+path)
}

// Wrote reports an output file.
func Wrote(w io.Writer, path string, segments int) {
	fmt.Fprintf(w, "%s  %s (%d segments)\n", newStyle.Render("wrote"), path, segments)
}

// Warn prints a warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warnStyle.Render("warn")+"  "+fmt.Sprintf(format, args...))
}

// RuleWarnings prints one warning per skipped rule statement.
func RuleWarnings(w io.Writer, errs []grammar.ParseError) {
	for _, e := range errs {
		Warn(w, "rule %d skipped: %s (%q)", e.Index, e.Message, e.Statement)
	}
}

// Detail prints a de-emphasized line, used for --verbose output.
func Detail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, faintStyle.Render(fmt.Sprintf(format, args...)))
}

// Progress prints the stepping status line.
func Progress(w io.Writer, p session.Progress) {
	fmt.Fprintln(w, stepStyle.Render(p.String()))
}

// SegmentLine prints one draw event.
func SegmentLine(w io.Writer, i int, s turtle.Segment) {
	fmt.Fprintf(w, "%4d  (%.2f, %.2f) -> (%.2f, %.2f)  #%02x%02x%02x  %g\n",
		i, s.X1, s.Y1, s.X2, s.Y2, s.Color.R, s.Color.G, s.Color.B, s.Width)
}

// PresetRow prints a preset in the list view.
func PresetRow(w io.Writer, name, axiom, rules string, iterations int, angle float64, nameWidth int) {
	padded := name + strings.Repeat(" ", max(nameWidth-len(name), 0))
	fmt.Fprintf(w, "%s  n=%d  %g°  %s  %s\n", nameStyle.Render(padded), iterations, angle, axiom, faintStyle.Render(rules))
}

// SummaryLine prints the size of a generated program.
func SummaryLine(w io.Writer, symbols int) {
	fmt.Fprintf(w, "%d symbols\n", symbols)
}
