// Package directive finds citation directives in source files and
// parses their argument lists into typed descriptors.
//
// A directive is a line comment of the form
//
//	//cite: <source-kind>, key = "value", changed = ("old", "new"), ...
//
// placed in the comment block immediately above a declaration. The
// scanner attaches each directive to the declaration that follows it;
// the parser validates the argument list against the registered
// source-kind schemas and the recognized behavior keywords.
package directive

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"cite/internal/source"
)

// Marker introduces a citation directive inside a line comment.
const Marker = "//cite:"

// Raw is one scanned directive occurrence before argument parsing:
// the raw argument text, its position, and the declaration it is
// attached to. Raw carries everything parsing needs, so scan results
// can be cached and re-parsed deterministically.
type Raw struct {
	Args    string      // argument text after the marker
	ArgsOff uint32      // byte offset of Args within the file
	Span    source.Span // the directive comment line
	Target  Target
}

// Scan finds every citation directive in the file and attaches it to
// the declaration that follows. Scanning never fails: unattached or
// misattached directives are recorded with their unsupported target
// kind and rejected during parsing.
func Scan(file *source.File) []Raw {
	var raws []Raw

	lines := splitLines(file.Content)
	for i, ln := range lines {
		trimmed := strings.TrimLeft(ln.text, " \t")
		if !strings.HasPrefix(trimmed, Marker) {
			continue
		}
		indent := len(ln.text) - len(trimmed)
		markerOff := ln.off + mustU32(indent)
		argsOff := markerOff + mustU32(len(Marker))

		raw := Raw{
			Args:    trimmed[len(Marker):],
			ArgsOff: argsOff,
			Span: source.Span{
				File:  file.ID,
				Start: markerOff,
				End:   ln.off + mustU32(len(ln.text)),
			},
			Target: findTarget(file, lines, i+1),
		}
		raws = append(raws, raw)
	}
	return raws
}

type scanLine struct {
	text string
	off  uint32
}

func splitLines(content []byte) []scanLine {
	var lines []scanLine
	start := 0
	for i, b := range content {
		if b == '\n' {
			lines = append(lines, scanLine{text: string(content[start:i]), off: mustU32(start)})
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, scanLine{text: string(content[start:]), off: mustU32(start)})
	}
	return lines
}

// findTarget locates the declaration a directive at lines[idx-1] is
// attached to: subsequent comment lines are skipped, the first
// significant line is classified. A blank line ends the comment block,
// detaching the directive.
func findTarget(file *source.File, lines []scanLine, idx int) Target {
	for ; idx < len(lines); idx++ {
		trimmed := strings.TrimLeft(lines[idx].text, " \t")
		if strings.HasPrefix(trimmed, "//") {
			continue
		}
		if trimSpaces(trimmed) == "" {
			// comment block ended without a declaration
			return Target{Kind: TargetNone, Span: lineSpan(file, lines[idx])}
		}
		kind, name := classifyTarget(lines[idx].text)
		return Target{Kind: kind, Name: name, Span: lineSpan(file, lines[idx])}
	}
	end := mustU32(len(file.Content))
	return Target{Kind: TargetNone, Span: source.Span{File: file.ID, Start: end, End: end}}
}

func lineSpan(file *source.File, ln scanLine) source.Span {
	return source.Span{
		File:  file.ID,
		Start: ln.off,
		End:   ln.off + mustU32(len(ln.text)),
	}
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
