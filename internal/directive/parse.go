package directive

import (
	"fmt"
	"strings"

	"cite/internal/citation"
	"cite/internal/citesource"
	"cite/internal/diag"
	"cite/internal/source"
)

// Behavior-override keywords recognized on every source kind.
const (
	kwLevel      = "level"
	kwAnnotation = "annotation"
	kwReason     = "reason"
	kwGlobal     = "global"
)

// ParseError is a malformed directive argument list. Always fatal: a
// directive that cannot be parsed cannot be trusted.
type ParseError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func malformed(span source.Span, format string, args ...any) *ParseError {
	return &ParseError{Code: diag.DirMalformedArgs, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// WrongTargetError is a directive attached to a declaration kind the
// tool does not validate. Always fatal.
type WrongTargetError struct {
	Span   source.Span
	Target Target
}

func (e *WrongTargetError) Error() string {
	return fmt.Sprintf("citation cannot be attached to %s", e.Target.Kind)
}

// Directive is one parsed citation directive: the resolved source-kind
// schema with its constructor arguments, the behavior overrides, and
// where everything came from. Immutable once parsed; consumed within a
// single run.
type Directive struct {
	SourceKind string
	Schema     citesource.Schema
	Args       citesource.Args
	Overrides  citation.Overrides
	Reason     string
	Span       source.Span
	Target     Target
}

// Parse validates one scanned directive against the schema registry
// and produces a typed descriptor.
//
// The first argument names the source kind; the rest are source
// keyword arguments mixed with behavior overrides. Unknown keywords
// are rejected regardless of kind, duplicates are rejected, and the
// keyword set must be accepted by exactly the first matching schema in
// the registry's trial order.
func Parse(raw Raw, registry *citesource.Registry) (*Directive, error) {
	if !raw.Target.Kind.Supported() {
		return nil, &WrongTargetError{Span: raw.Span, Target: raw.Target}
	}

	items, kind, err := parseItems(raw)
	if err != nil {
		return nil, err
	}

	d := &Directive{
		SourceKind: kind,
		Span:       raw.Span,
		Target:     raw.Target,
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.key] {
			return nil, &ParseError{
				Code: diag.DirDuplicateKeyword,
				Span: item.span,
				Msg:  fmt.Sprintf("duplicate keyword %q", item.key),
			}
		}
		seen[item.key] = true

		if perr := applyItem(d, item, registry); perr != nil {
			return nil, perr
		}
	}

	schema, tried := registry.Resolve(kind, d.Args.Keys())
	if schema == nil {
		return nil, &ParseError{
			Code: diag.DirNoMatchingKind,
			Span: raw.Span,
			Msg:  fmt.Sprintf("no matching source kind for %q (tried: %s)", kind, strings.Join(tried, ", ")),
		}
	}
	d.Schema = schema
	return d, nil
}

type argItem struct {
	key    string
	values []string
	tuple  bool
	span   source.Span
}

// parseItems tokenizes and parses the argument list:
//
//	kind ( ',' ident '=' value )*
//	value := string | '(' string ( ',' string )* ')'
func parseItems(raw Raw) ([]argItem, string, *ParseError) {
	sc := newArgScanner(raw.Span.File, raw.Args, raw.ArgsOff)

	tok, err := sc.next()
	if err != nil {
		return nil, "", err
	}
	if tok.kind == tokEOF {
		return nil, "", &ParseError{Code: diag.DirEmptyDirective, Span: raw.Span, Msg: "empty directive: expected a source kind"}
	}
	if tok.kind != tokIdent {
		return nil, "", malformed(tok.span, "expected a source-kind identifier, got %s", tok.kind)
	}
	kind := tok.text

	var items []argItem
	for {
		tok, err = sc.next()
		if err != nil {
			return nil, "", err
		}
		if tok.kind == tokEOF {
			return items, kind, nil
		}
		if tok.kind != tokComma {
			return nil, "", malformed(tok.span, "expected ',' between directive arguments, got %s", tok.kind)
		}

		key, kerr := sc.next()
		if kerr != nil {
			return nil, "", kerr
		}
		if key.kind != tokIdent {
			return nil, "", malformed(key.span, "expected a keyword, got %s", key.kind)
		}

		eq, eerr := sc.next()
		if eerr != nil {
			return nil, "", eerr
		}
		if eq.kind != tokEq {
			return nil, "", malformed(eq.span, "expected '=' after keyword %q, got %s", key.text, eq.kind)
		}

		item, verr := parseValue(sc, key)
		if verr != nil {
			return nil, "", verr
		}
		items = append(items, item)
	}
}

func parseValue(sc *argScanner, key token) (argItem, *ParseError) {
	tok, err := sc.next()
	if err != nil {
		return argItem{}, err
	}

	switch tok.kind {
	case tokString:
		return argItem{
			key:    key.text,
			values: []string{tok.text},
			span:   key.span.Cover(tok.span),
		}, nil

	case tokLParen:
		item := argItem{key: key.text, tuple: true, span: key.span}
		for {
			val, verr := sc.next()
			if verr != nil {
				return argItem{}, verr
			}
			if val.kind != tokString {
				return argItem{}, malformed(val.span, "expected a string inside tuple for %q, got %s", key.text, val.kind)
			}
			item.values = append(item.values, val.text)

			sep, serr := sc.next()
			if serr != nil {
				return argItem{}, serr
			}
			switch sep.kind {
			case tokComma:
				continue
			case tokRParen:
				item.span = item.span.Cover(sep.span)
				return item, nil
			default:
				return argItem{}, malformed(sep.span, "expected ',' or ')' in tuple for %q, got %s", key.text, sep.kind)
			}
		}

	default:
		return argItem{}, malformed(tok.span, "expected a value for keyword %q, got %s", key.text, tok.kind)
	}
}

// applyItem routes one keyword argument to behavior overrides or the
// source argument list, rejecting unknown keywords up front.
func applyItem(d *Directive, item argItem, registry *citesource.Registry) *ParseError {
	switch item.key {
	case kwLevel, kwAnnotation, kwReason, kwGlobal:
		if item.tuple || len(item.values) != 1 {
			return malformed(item.span, "keyword %q takes a single string", item.key)
		}
		value := item.values[0]
		switch item.key {
		case kwLevel:
			level, err := citation.ParseLevel(value)
			if err != nil {
				return &ParseError{Code: diag.DirInvalidLevel, Span: item.span, Msg: err.Error()}
			}
			d.Overrides.Level = &level
		case kwAnnotation:
			annotation, err := citation.ParseAnnotation(value)
			if err != nil {
				return &ParseError{Code: diag.DirInvalidAnnotation, Span: item.span, Msg: err.Error()}
			}
			d.Overrides.Annotation = &annotation
		case kwReason:
			d.Reason = value
		case kwGlobal:
			// validated for syntax, recorded, and ignored during
			// resolution: global mode is process-wide policy
			global, err := citation.ParseGlobal(value)
			if err != nil {
				return malformed(item.span, "%s", err.Error())
			}
			d.Overrides.Global = &global
		}
		return nil
	}

	if !registry.KnownKeyword(item.key) {
		return &ParseError{
			Code: diag.DirUnknownKeyword,
			Span: item.span,
			Msg:  fmt.Sprintf("unknown keyword %q", item.key),
		}
	}
	d.Args = append(d.Args, citesource.Arg{Key: item.key, Values: item.values})
	return nil
}
