// Package citation holds the behavior model and the validation engine:
// how severe a content mismatch is, how it is presented, and the pure
// classification of a comparison under an effective behavior.
package citation

import (
	"fmt"
	"strings"
)

// Level is the severity applied when cited content no longer matches.
type Level uint8

const (
	// LevelError fails the run on a mismatch.
	LevelError Level = iota
	// LevelWarn reports a mismatch without failing the run.
	LevelWarn
	// LevelSilent records a mismatch but emits nothing.
	LevelSilent
)

// ParseLevel parses a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, nil
	case "warn":
		return LevelWarn, nil
	case "silent":
		return LevelSilent, nil
	}
	return 0, fmt.Errorf("invalid citation level %q: valid values are error, warn, silent", s)
}

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelSilent:
		return "silent"
	}
	return "unknown"
}

// ShouldEmit reports whether a mismatch at this level produces output.
func (l Level) ShouldEmit() bool {
	return l != LevelSilent
}

// ShouldFail reports whether a mismatch at this level fails the run.
func (l Level) ShouldFail() bool {
	return l == LevelError
}
