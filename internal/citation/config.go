package citation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cite/internal/diag"
)

// Environment variables read once per run.
const (
	EnvLevel      = "CITE_LEVEL"
	EnvAnnotation = "CITE_ANNOTATION"
	EnvGlobal     = "CITE_GLOBAL"
)

// ManifestName is the per-project configuration file.
const ManifestName = "cite.toml"

// ConfigError is a fatal ambient-configuration failure: an unrecognized
// value never falls back silently.
type ConfigError struct {
	Code   diag.Code
	Source string // env var name or manifest path
	Value  string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s [%s]: %v", e.Source, e.Code.ID(), e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type manifestConfig struct {
	Citation citationTable `toml:"citation"`
}

type citationTable struct {
	Level      string `toml:"level"`
	Annotation string `toml:"annotation"`
	Global     string `toml:"global"`
}

// FindManifest walks up from startDir looking for cite.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadAmbient resolves the ambient behavior exactly once per run:
// defaults, then the nearest cite.toml above startDir, then the CITE_*
// environment variables. Any unrecognized value is a fatal ConfigError.
func LoadAmbient(startDir string) (Behavior, error) {
	behavior := DefaultBehavior()

	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return behavior, err
	}
	if ok {
		behavior, err = applyManifest(behavior, manifestPath)
		if err != nil {
			return behavior, err
		}
	}
	return applyEnv(behavior)
}

func applyManifest(behavior Behavior, path string) (Behavior, error) {
	var cfg manifestConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return behavior, &ConfigError{Code: diag.CfgManifestInvalid, Source: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
	}

	if meta.IsDefined("citation", "level") {
		behavior.Level, err = ParseLevel(cfg.Citation.Level)
		if err != nil {
			return behavior, &ConfigError{Code: diag.CfgInvalidLevel, Source: path, Value: cfg.Citation.Level, Err: err}
		}
	}
	if meta.IsDefined("citation", "annotation") {
		behavior.Annotation, err = ParseAnnotation(cfg.Citation.Annotation)
		if err != nil {
			return behavior, &ConfigError{Code: diag.CfgInvalidAnnotation, Source: path, Value: cfg.Citation.Annotation, Err: err}
		}
	}
	if meta.IsDefined("citation", "global") {
		behavior.Global, err = ParseGlobal(cfg.Citation.Global)
		if err != nil {
			return behavior, &ConfigError{Code: diag.CfgInvalidGlobal, Source: path, Value: cfg.Citation.Global, Err: err}
		}
	}
	return behavior, nil
}

func applyEnv(behavior Behavior) (Behavior, error) {
	if v := strings.TrimSpace(os.Getenv(EnvLevel)); v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return behavior, &ConfigError{Code: diag.CfgInvalidLevel, Source: EnvLevel, Value: v, Err: err}
		}
		behavior.Level = level
	}
	if v := strings.TrimSpace(os.Getenv(EnvAnnotation)); v != "" {
		annotation, err := ParseAnnotation(v)
		if err != nil {
			return behavior, &ConfigError{Code: diag.CfgInvalidAnnotation, Source: EnvAnnotation, Value: v, Err: err}
		}
		behavior.Annotation = annotation
	}
	if v := strings.TrimSpace(os.Getenv(EnvGlobal)); v != "" {
		global, err := ParseGlobal(v)
		if err != nil {
			return behavior, &ConfigError{Code: diag.CfgInvalidGlobal, Source: EnvGlobal, Value: v, Err: err}
		}
		behavior.Global = global
	}
	return behavior, nil
}
