// Package diag formats type-inference diagnostics with source context,
// line/column information, and a caret pointing at the offending
// position.
package diag

import (
	"fmt"
	"strings"

	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/lexer"
)

// Diagnostic is one reported inference error, carrying enough context
// to format itself without a second pass over the source.
type Diagnostic struct {
	Message string
	Pos     lexer.Position
	Source  string
	File    string
}

// FromCell wraps a graph.Diagnostic (raised by a Cell.Raise call) with
// the source text and file name needed to render it.
func FromCell(d *graph.Diagnostic, source, file string) *Diagnostic {
	return &Diagnostic{Message: d.Message, Pos: d.Pos, Source: source, File: file}
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a source line and caret. If color
// is true, ANSI codes highlight the caret and message.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: error\n", d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "line %d:%d: error\n", d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine(n int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatAll renders a batch of diagnostics the way a multi-error
// compiler run reports them, numbering each entry.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "inference failed with %d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
