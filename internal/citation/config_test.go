package citation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cite/internal/diag"
)

func TestLoadAmbient_Defaults(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvAnnotation, "")
	t.Setenv(EnvGlobal, "")

	got, err := LoadAmbient(t.TempDir())
	if err != nil {
		t.Fatalf("LoadAmbient failed: %v", err)
	}
	if got != DefaultBehavior() {
		t.Errorf("defaults = %+v, want %+v", got, DefaultBehavior())
	}
}

func TestLoadAmbient_Env(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	t.Setenv(EnvAnnotation, "footnote")
	t.Setenv(EnvGlobal, "strict")

	got, err := LoadAmbient(t.TempDir())
	if err != nil {
		t.Fatalf("LoadAmbient failed: %v", err)
	}
	want := Behavior{Level: LevelError, Annotation: AnnotationFootnote, Global: GlobalStrict}
	if got != want {
		t.Errorf("env config = %+v, want %+v", got, want)
	}
}

func TestLoadAmbient_InvalidEnvIsFatal(t *testing.T) {
	t.Setenv(EnvLevel, "loud")
	t.Setenv(EnvAnnotation, "")
	t.Setenv(EnvGlobal, "")

	_, err := LoadAmbient(t.TempDir())
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Source != EnvLevel || cfgErr.Value != "loud" {
		t.Errorf("error must name the variable and value: %+v", cfgErr)
	}
	if cfgErr.Code != diag.CfgInvalidLevel {
		t.Errorf("code = %v, want CfgInvalidLevel", cfgErr.Code)
	}
	if !strings.Contains(cfgErr.Error(), "CFG2001") {
		t.Errorf("message must carry the code ID: %q", cfgErr.Error())
	}
}

func TestLoadAmbient_Manifest(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvAnnotation, "")
	t.Setenv(EnvGlobal, "")

	dir := t.TempDir()
	manifest := filepath.Join(dir, ManifestName)
	content := "[citation]\nlevel = \"silent\"\nglobal = \"lenient\"\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	// discovered by walking up from a nested directory
	nested := filepath.Join(dir, "pkg", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := LoadAmbient(nested)
	if err != nil {
		t.Fatalf("LoadAmbient failed: %v", err)
	}
	want := Behavior{Level: LevelSilent, Annotation: AnnotationInline, Global: GlobalLenient}
	if got != want {
		t.Errorf("manifest config = %+v, want %+v", got, want)
	}
}

func TestLoadAmbient_EnvOverridesManifest(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	t.Setenv(EnvAnnotation, "")
	t.Setenv(EnvGlobal, "")

	dir := t.TempDir()
	content := "[citation]\nlevel = \"silent\"\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	got, err := LoadAmbient(dir)
	if err != nil {
		t.Fatalf("LoadAmbient failed: %v", err)
	}
	if got.Level != LevelError {
		t.Errorf("env must win over manifest: level = %v", got.Level)
	}
}

func TestLoadAmbient_InvalidManifestValueIsFatal(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvAnnotation, "")
	t.Setenv(EnvGlobal, "")

	dir := t.TempDir()
	content := "[citation]\nglobal = \"yolo\"\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	_, err := LoadAmbient(dir)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Value != "yolo" {
		t.Errorf("error must carry the offending value: %+v", cfgErr)
	}
	if cfgErr.Code != diag.CfgInvalidGlobal {
		t.Errorf("code = %v, want CfgInvalidGlobal", cfgErr.Code)
	}
}

func TestLoadAmbient_UnparsableManifestIsFatal(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvAnnotation, "")
	t.Setenv(EnvGlobal, "")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte("[citation\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	_, err := LoadAmbient(dir)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Code != diag.CfgManifestInvalid {
		t.Errorf("code = %v, want CfgManifestInvalid", cfgErr.Code)
	}
	if !strings.Contains(cfgErr.Error(), "CFG2004") {
		t.Errorf("message must carry the code ID: %q", cfgErr.Error())
	}
}
