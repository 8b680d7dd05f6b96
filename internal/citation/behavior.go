package citation

// Behavior is a complete validation policy: severity on mismatch,
// presentation style, and the process-wide enforcement mode.
type Behavior struct {
	Level      Level
	Annotation Annotation
	Global     Global
}

// DefaultBehavior returns the fixed defaults applied when nothing is
// configured: warn on mismatch, inline presentation, no global mode.
func DefaultBehavior() Behavior {
	return Behavior{
		Level:      LevelWarn,
		Annotation: AnnotationInline,
		Global:     GlobalDefault,
	}
}

// Overrides is a directive's partial behavior. Nil fields mean "not
// set". Global is accepted syntactically but never applied: the ambient
// mode is process-wide policy.
type Overrides struct {
	Level      *Level
	Annotation *Annotation
	Global     *Global
}

// Resolve combines ambient policy with a directive's local overrides
// into the effective behavior for one directive.
//
// Local level and annotation win over ambient values. The ambient
// global mode always wins over any local attempt to set it, and takes
// absolute precedence over level: strict forces error even if the
// directive asked for warn or silent; lenient caps error down to warn
// while leaving silent alone.
func Resolve(ambient Behavior, overrides Overrides) Behavior {
	eff := ambient

	if overrides.Level != nil {
		eff.Level = *overrides.Level
	}
	if overrides.Annotation != nil {
		eff.Annotation = *overrides.Annotation
	}
	// overrides.Global intentionally ignored

	switch ambient.Global {
	case GlobalStrict:
		eff.Level = LevelError
	case GlobalLenient:
		if eff.Level == LevelError {
			eff.Level = LevelWarn
		}
	case GlobalDefault:
		// local overrides apply as-is
	}
	return eff
}
