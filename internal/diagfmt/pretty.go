// Package diagfmt renders collected diagnostics for humans and tools:
// Pretty writes an annotated, optionally colored report; JSON writes a
// machine-readable document with the same content.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cite/internal/diag"
	"cite/internal/source"
)

// Pretty formats diagnostics in a human-readable report. It walks
// bag.Items() in order (call bag.Sort() beforehand). Each diagnostic
// prints as
//
//	<path>:<line>:<col>: <SEVERITY> [<CODE>]: <message>
//
// followed by the offending source line underlined with ^~~~ and any
// notes, indented beneath it.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	for i := 0; i < maxItems; i++ {
		writePretty(w, &items[i], fs, opts)
	}
	if truncated := len(items) - maxItems; truncated > 0 {
		fmt.Fprintf(w, "... and %d more\n", truncated)
	}
}

func writePretty(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s [%s]: %s\n",
		formatPos(fs, d.Primary, opts.PathMode),
		severityLabel(d.Severity, opts.Color),
		d.Code.ID(),
		d.Message,
	)

	if opts.ShowSource {
		writeSourceLine(w, fs, d.Primary, opts.Color)
	}

	for _, note := range d.Notes {
		if note.Span.Empty() && note.Span.Start == 0 {
			fmt.Fprintf(w, "  note: %s\n", note.Msg)
			continue
		}
		fmt.Fprintf(w, "  note: %s: %s\n", formatPos(fs, note.Span, opts.PathMode), note.Msg)
	}
}

func formatPos(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := f.FormatPath(mode.formatMode(), fs.BaseDir())
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeSourceLine prints the first line the span covers plus an
// underline. The underline starts with ^ and extends with ~ for the
// display width of the spanned text on that line.
func writeSourceLine(w io.Writer, fs *source.FileSet, span source.Span, colored bool) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}

	fmt.Fprintf(w, "  %s\n", line)

	startCol := int(start.Col)
	endCol := int(end.Col)
	if end.Line != start.Line || endCol <= startCol {
		endCol = startCol + 1
	}

	prefix := underlinePad(line, startCol)
	width := spanWidth(line, startCol, endCol)
	marks := "^" + strings.Repeat("~", max(width-1, 0))
	if colored {
		marks = color.New(color.FgGreen, color.Bold).Sprint(marks)
	}
	fmt.Fprintf(w, "  %s%s\n", prefix, marks)
}

// underlinePad builds whitespace matching the display width of the
// line's first col-1 runes, preserving tabs so the underline stays
// aligned under any tab-stop rendering.
func underlinePad(line string, col int) string {
	var b strings.Builder
	n := 1
	for _, r := range line {
		if n >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		n++
	}
	return b.String()
}

// spanWidth measures the display width of the runes between two
// 1-based columns on the line, clamped to at least 1.
func spanWidth(line string, startCol, endCol int) int {
	width := 0
	n := 1
	for _, r := range line {
		if n >= endCol {
			break
		}
		if n >= startCol {
			width += max(runewidth.RuneWidth(r), 1)
		}
		n++
	}
	return max(width, 1)
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	case diag.SevInfo:
		return color.New(color.FgCyan).Sprint(label)
	}
	return label
}
