package directive

import (
	"cite/internal/source"
)

// TargetKind classifies the declaration a directive is attached to.
type TargetKind uint8

const (
	// TargetNone means no declaration follows the directive.
	TargetNone TargetKind = iota
	TargetFunc
	TargetType
	TargetConst
	TargetVar
	TargetImport
	TargetPackage
	// TargetOther is a line that is not a recognizable declaration.
	TargetOther
)

func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "end of file"
	case TargetFunc:
		return "func"
	case TargetType:
		return "type"
	case TargetConst:
		return "const"
	case TargetVar:
		return "var"
	case TargetImport:
		return "import"
	case TargetPackage:
		return "package"
	case TargetOther:
		return "statement"
	}
	return "unknown"
}

// Supported reports whether citations may be attached to this
// declaration kind. Policy, not a technical limit: only named
// declarations that a reader would cite are allowed.
func (k TargetKind) Supported() bool {
	switch k {
	case TargetFunc, TargetType, TargetConst, TargetVar:
		return true
	}
	return false
}

// Target is the declaration a directive is attached to.
type Target struct {
	Kind TargetKind
	Name string
	Span source.Span
}

// classifyTarget inspects one significant source line and returns the
// declaration kind plus the declared name when recognizable.
func classifyTarget(line string) (TargetKind, string) {
	word, rest := firstWord(line)
	switch word {
	case "func":
		return TargetFunc, declName(rest)
	case "type":
		return TargetType, declName(rest)
	case "const":
		return TargetConst, declName(rest)
	case "var":
		return TargetVar, declName(rest)
	case "import":
		return TargetImport, ""
	case "package":
		return TargetPackage, declName(rest)
	case "":
		if len(trimSpaces(line)) == 0 {
			return TargetNone, ""
		}
		return TargetOther, ""
	}
	return TargetOther, ""
}

func trimSpaces(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func firstWord(line string) (word, rest string) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	start := i
	for i < len(line) && isIdentByte(line[i]) {
		i++
	}
	return line[start:i], line[i:]
}

// declName extracts the declared identifier, skipping a method
// receiver and grouped-declaration parens.
func declName(rest string) string {
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	// method receiver: func (r *Recv) Name(...)
	if i < len(rest) && rest[i] == '(' {
		depth := 0
		for ; i < len(rest); i++ {
			if rest[i] == '(' {
				depth++
			} else if rest[i] == ')' {
				depth--
				if depth == 0 {
					i++
					break
				}
			}
		}
		for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
			i++
		}
	}
	start := i
	for i < len(rest) && isIdentByte(rest[i]) {
		i++
	}
	return rest[start:i]
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
