package diag

// Severity ranks how strongly a citation diagnostic gates the run.
type Severity uint8

const (
	// SevInfo carries advisory detail and never affects the exit code.
	SevInfo Severity = iota
	// SevWarning marks a drifted citation the run reports but tolerates.
	SevWarning
	// SevError marks a directive fault or an error-level mismatch; any
	// error diagnostic fails the run.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
