package citesource

import (
	"fmt"
)

// MockSource holds two fixed strings and always fetches successfully.
// It is the reference implementation of the Source surface and stands
// in for not-yet-built remote kinds in tests and examples.
type MockSource struct {
	ReferencedContent string
	CurrentContent    string
}

// NewMockSame builds a mock whose referenced and current content are
// both the given string; Get always yields IsSame() == true.
func NewMockSame(content string) *MockSource {
	return &MockSource{ReferencedContent: content, CurrentContent: content}
}

// NewMockChanged builds a mock with distinct referenced and current
// content; Get yields a Comparison reporting both strings.
func NewMockChanged(referenced, current string) *MockSource {
	return &MockSource{ReferencedContent: referenced, CurrentContent: current}
}

func (m *MockSource) Kind() string {
	return "mock"
}

func (m *MockSource) ID() string {
	return fmt.Sprintf("mock_source_%s", m.ReferencedContent)
}

func (m *MockSource) Get() (*Comparison, *SourceError) {
	return NewComparison(m.ReferencedContent, m.CurrentContent), nil
}

// mockSchema validates and constructs mock sources from directive
// arguments: exactly one of `same = "s"` or `changed = ("old", "new")`.
type mockSchema struct{}

// MockSchema returns the argument schema for the mock source kind.
func MockSchema() Schema {
	return mockSchema{}
}

func (mockSchema) Kind() string {
	return "mock"
}

func (mockSchema) Keywords() []string {
	return []string{"same", "changed"}
}

func (mockSchema) Accepts(kind string, keys []string) bool {
	if kind != "mock" {
		return false
	}
	var hasSame, hasChanged bool
	for _, k := range keys {
		switch k {
		case "same":
			hasSame = true
		case "changed":
			hasChanged = true
		default:
			return false
		}
	}
	return hasSame != hasChanged
}

func (mockSchema) Construct(args Args) (Source, *SourceError) {
	same, hasSame := args.Lookup("same")
	changed, hasChanged := args.Lookup("changed")

	switch {
	case hasSame && hasChanged:
		return nil, constructError("mock takes either 'same' or 'changed', not both")
	case hasSame:
		if len(same.Values) != 1 {
			return nil, constructError("mock 'same' takes a single string, got %d values", len(same.Values))
		}
		return NewMockSame(same.Values[0]), nil
	case hasChanged:
		if len(changed.Values) != 2 {
			return nil, constructError("mock 'changed' takes a (referenced, current) tuple, got %d values", len(changed.Values))
		}
		return NewMockChanged(changed.Values[0], changed.Values[1]), nil
	default:
		return nil, constructError("mock requires 'same' or 'changed'")
	}
}
