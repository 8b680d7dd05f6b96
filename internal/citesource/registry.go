package citesource

import (
	"fmt"
	"sort"
	"strings"
)

// Schema validates one source kind's argument surface and constructs
// the source. New kinds register a Schema; nothing else changes.
type Schema interface {
	// Kind is the identifier used as a directive's first argument.
	Kind() string
	// Keywords lists the source-specific keys the schema understands.
	Keywords() []string
	// Accepts reports whether this schema matches the kind identifier
	// and keyword set of a directive.
	Accepts(kind string, keys []string) bool
	// Construct builds the source from validated arguments.
	Construct(args Args) (Source, *SourceError)
}

// Registry holds schemas in a fixed trial order. Schemas are tried
// in registration order; the first one accepting the keyword set wins.
type Registry struct {
	schemas []Schema
	byKind  map[string]int
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[string]int)}
}

// DefaultRegistry returns a registry with all built-in source kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(MockSchema())
	return r
}

// Register appends a schema to the trial order. Registering a schema
// whose kind name or keyword signature collides with an existing one is
// a wiring bug in the tool itself and panics at registration time
// rather than being resolved silently by order.
func (r *Registry) Register(s Schema) {
	kind := s.Kind()
	if _, dup := r.byKind[kind]; dup {
		panic(fmt.Sprintf("citesource: duplicate source kind %q", kind))
	}
	sig := keywordSignature(s.Keywords())
	for _, existing := range r.schemas {
		if keywordSignature(existing.Keywords()) == sig {
			panic(fmt.Sprintf("citesource: schema %q has the same keyword signature as %q", kind, existing.Kind()))
		}
	}
	r.byKind[kind] = len(r.schemas)
	r.schemas = append(r.schemas, s)
}

// Resolve tries every schema in order and returns the first that
// accepts the kind identifier and keyword set. The second return lists
// all attempted kinds for "no matching source kind" messages.
func (r *Registry) Resolve(kind string, keys []string) (Schema, []string) {
	for _, s := range r.schemas {
		if s.Accepts(kind, keys) {
			return s, nil
		}
	}
	return nil, r.Kinds()
}

// Kinds returns all registered kind names in trial order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, len(r.schemas))
	for i, s := range r.schemas {
		kinds[i] = s.Kind()
	}
	return kinds
}

// Has reports whether a kind name is registered.
func (r *Registry) Has(kind string) bool {
	_, ok := r.byKind[kind]
	return ok
}

// KnownKeyword reports whether any registered schema understands the
// keyword. Used to reject typos before schema trial, so the message can
// name the offending key instead of a generic "no matching kind".
func (r *Registry) KnownKeyword(key string) bool {
	for _, s := range r.schemas {
		for _, k := range s.Keywords() {
			if k == key {
				return true
			}
		}
	}
	return false
}

func keywordSignature(keywords []string) string {
	sorted := append([]string(nil), keywords...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
