package citation

import (
	"fmt"
	"strings"
)

// Global is the process-wide enforcement mode. It is ambient-only: a
// directive cannot override it.
type Global uint8

const (
	// GlobalDefault defers to local and ambient level settings.
	GlobalDefault Global = iota
	// GlobalStrict forces every mismatch to LevelError, regardless of
	// local overrides. The CI enforcement escape hatch.
	GlobalStrict
	// GlobalLenient caps the effective level at LevelWarn; silent
	// requests stay silent.
	GlobalLenient
)

// ParseGlobal parses a case-insensitive global mode name.
func ParseGlobal(s string) (Global, error) {
	switch strings.ToLower(s) {
	case "default":
		return GlobalDefault, nil
	case "strict":
		return GlobalStrict, nil
	case "lenient":
		return GlobalLenient, nil
	}
	return 0, fmt.Errorf("invalid citation global mode %q: valid values are strict, lenient, default", s)
}

func (g Global) String() string {
	switch g {
	case GlobalDefault:
		return "default"
	case GlobalStrict:
		return "strict"
	case GlobalLenient:
		return "lenient"
	}
	return "unknown"
}
