package citation

import (
	"cite/internal/citesource"
)

// OutcomeKind is the user-visible classification of one directive.
type OutcomeKind uint8

const (
	// OutcomeValid emits nothing.
	OutcomeValid OutcomeKind = iota
	// OutcomeWarning emits a non-fatal diagnostic.
	OutcomeWarning
	// OutcomeError fails the run.
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeValid:
		return "valid"
	case OutcomeWarning:
		return "warning"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// Outcome is the result of classifying one comparison. Mismatch is
// recorded even when the level is silent, so a silent mismatch stays
// distinguishable from true equality.
type Outcome struct {
	Kind       OutcomeKind
	Mismatch   bool
	Referenced string
	Current    string
	Reason     string
}

// Classify maps a comparison and an effective behavior to an outcome.
// Pure: identical inputs always classify identically, and matching
// content is Valid under every level.
func Classify(cmp *citesource.Comparison, behavior Behavior, reason string) Outcome {
	if cmp.IsSame() {
		return Outcome{Kind: OutcomeValid}
	}

	out := Outcome{
		Mismatch:   true,
		Referenced: cmp.Referenced,
		Current:    cmp.Current,
		Reason:     reason,
	}
	switch behavior.Level {
	case LevelError:
		out.Kind = OutcomeError
	case LevelWarn:
		out.Kind = OutcomeWarning
	case LevelSilent:
		out.Kind = OutcomeValid
	}
	return out
}

// ClassifySourceError maps a source construction/fetch failure to an
// outcome. A source that cannot be evaluated is treated at least as
// severely as a confirmed mismatch and is never fully silenced: error
// level fails the run, warn and silent both surface a warning.
func ClassifySourceError(err *citesource.SourceError, behavior Behavior) Outcome {
	out := Outcome{
		Mismatch: true,
		Reason:   err.Error(),
	}
	if behavior.Level == LevelError {
		out.Kind = OutcomeError
	} else {
		out.Kind = OutcomeWarning
	}
	return out
}
