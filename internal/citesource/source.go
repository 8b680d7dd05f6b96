// Package citesource defines the content-source abstraction the
// validation engine runs against: a Source produces a Comparison of
// referenced (cited) and current content, or fails with a SourceError.
// The engine never needs to know which kind produced a Comparison.
package citesource

import (
	"fmt"
	"sync"
)

// Source is a capability: anything that can produce a Comparison on
// demand. Implementations own their construction arguments and are
// queried exactly once per directive.
type Source interface {
	// Kind returns the source-kind identifier used in directives.
	Kind() string
	// ID identifies the concrete source instance in messages.
	ID() string
	// Get fetches referenced and current content and compares them.
	Get() (*Comparison, *SourceError)
}

// Comparison holds referenced and current content plus a lazily built
// human-readable delta. IsSame holds iff the two are equal under the
// producing source's equality notion; for the built-in kinds this is
// literal string equality.
type Comparison struct {
	Referenced string
	Current    string

	diffOnce sync.Once
	diff     string
}

// NewComparison builds a Comparison over two content strings.
func NewComparison(referenced, current string) *Comparison {
	return &Comparison{Referenced: referenced, Current: current}
}

// IsSame reports whether referenced and current content match.
func (c *Comparison) IsSame() bool {
	return c.Referenced == c.Current
}

// Diff returns a human-readable delta. It is computed on first use and
// cached; matching content yields an empty string.
func (c *Comparison) Diff() string {
	c.diffOnce.Do(func() {
		if c.Referenced == c.Current {
			return
		}
		c.diff = fmt.Sprintf("referenced: %q\ncurrent:    %q", c.Referenced, c.Current)
	})
	return c.diff
}

// SourceErrorKind classifies source failures.
type SourceErrorKind uint8

const (
	// ErrConstruct means the constructor arguments were malformed.
	// The parser validates schemas first, so hitting this at fetch time
	// indicates an internal-consistency fault.
	ErrConstruct SourceErrorKind = iota
	// ErrNetwork covers network/IO/timeout failures of remote kinds.
	ErrNetwork
	// ErrInternal covers everything else.
	ErrInternal
)

func (k SourceErrorKind) String() string {
	switch k {
	case ErrConstruct:
		return "construct"
	case ErrNetwork:
		return "network"
	case ErrInternal:
		return "internal"
	}
	return "unknown"
}

// SourceError is a source construction or fetch failure.
type SourceError struct {
	Kind SourceErrorKind
	Msg  string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %s error: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("source %s error: %s", e.Kind, e.Msg)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func constructError(format string, args ...any) *SourceError {
	return &SourceError{Kind: ErrConstruct, Msg: fmt.Sprintf(format, args...)}
}
