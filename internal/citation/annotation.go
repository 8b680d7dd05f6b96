package citation

import (
	"fmt"
	"strings"
)

// Annotation is the presentation style for emitted diagnostics. It does
// not affect severity.
type Annotation uint8

const (
	// AnnotationInline folds the content delta into the primary message.
	AnnotationInline Annotation = iota
	// AnnotationFootnote keeps the primary message short and renders the
	// delta as indented notes below it.
	AnnotationFootnote
)

// ParseAnnotation parses a case-insensitive annotation style name.
func ParseAnnotation(s string) (Annotation, error) {
	switch strings.ToLower(s) {
	case "inline":
		return AnnotationInline, nil
	case "footnote":
		return AnnotationFootnote, nil
	}
	return 0, fmt.Errorf("invalid citation annotation %q: valid values are inline, footnote", s)
}

func (a Annotation) String() string {
	switch a {
	case AnnotationInline:
		return "inline"
	case AnnotationFootnote:
		return "footnote"
	}
	return "unknown"
}
