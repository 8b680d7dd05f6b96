package citation

import (
	"testing"
)

func levelPtr(l Level) *Level                { return &l }
func annotationPtr(a Annotation) *Annotation { return &a }
func globalPtr(g Global) *Global             { return &g }

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		ambient   Behavior
		overrides Overrides
		want      Behavior
	}{
		{
			name:    "no overrides keeps ambient",
			ambient: DefaultBehavior(),
			want:    Behavior{Level: LevelWarn, Annotation: AnnotationInline, Global: GlobalDefault},
		},
		{
			name:      "local level wins under default global",
			ambient:   DefaultBehavior(),
			overrides: Overrides{Level: levelPtr(LevelError)},
			want:      Behavior{Level: LevelError, Annotation: AnnotationInline, Global: GlobalDefault},
		},
		{
			name:      "local annotation wins",
			ambient:   DefaultBehavior(),
			overrides: Overrides{Annotation: annotationPtr(AnnotationFootnote)},
			want:      Behavior{Level: LevelWarn, Annotation: AnnotationFootnote, Global: GlobalDefault},
		},
		{
			name:      "strict forces error over silent override",
			ambient:   Behavior{Level: LevelWarn, Annotation: AnnotationInline, Global: GlobalStrict},
			overrides: Overrides{Level: levelPtr(LevelSilent)},
			want:      Behavior{Level: LevelError, Annotation: AnnotationInline, Global: GlobalStrict},
		},
		{
			name:    "strict forces error with no override",
			ambient: Behavior{Level: LevelSilent, Annotation: AnnotationInline, Global: GlobalStrict},
			want:    Behavior{Level: LevelError, Annotation: AnnotationInline, Global: GlobalStrict},
		},
		{
			name:      "lenient caps error request at warn",
			ambient:   Behavior{Level: LevelWarn, Annotation: AnnotationInline, Global: GlobalLenient},
			overrides: Overrides{Level: levelPtr(LevelError)},
			want:      Behavior{Level: LevelWarn, Annotation: AnnotationInline, Global: GlobalLenient},
		},
		{
			name:      "lenient leaves silent alone",
			ambient:   Behavior{Level: LevelWarn, Annotation: AnnotationInline, Global: GlobalLenient},
			overrides: Overrides{Level: levelPtr(LevelSilent)},
			want:      Behavior{Level: LevelSilent, Annotation: AnnotationInline, Global: GlobalLenient},
		},
		{
			name:    "lenient caps ambient error",
			ambient: Behavior{Level: LevelError, Annotation: AnnotationInline, Global: GlobalLenient},
			want:    Behavior{Level: LevelWarn, Annotation: AnnotationInline, Global: GlobalLenient},
		},
		{
			name:      "local global never changes ambient mode",
			ambient:   Behavior{Level: LevelWarn, Annotation: AnnotationInline, Global: GlobalStrict},
			overrides: Overrides{Level: levelPtr(LevelSilent), Global: globalPtr(GlobalLenient)},
			want:      Behavior{Level: LevelError, Annotation: AnnotationInline, Global: GlobalStrict},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.ambient, tt.overrides)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	ambient := Behavior{Level: LevelError, Annotation: AnnotationFootnote, Global: GlobalLenient}
	overrides := Overrides{Level: levelPtr(LevelError), Annotation: annotationPtr(AnnotationInline)}

	first := Resolve(ambient, overrides)
	second := Resolve(ambient, overrides)
	if first != second {
		t.Errorf("resolution must be idempotent: %+v vs %+v", first, second)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"error", LevelError, false},
		{"WARN", LevelWarn, false},
		{"Silent", LevelSilent, false},
		{"fatal", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseGlobal(t *testing.T) {
	tests := []struct {
		input   string
		want    Global
		wantErr bool
	}{
		{"strict", GlobalStrict, false},
		{"LENIENT", GlobalLenient, false},
		{"default", GlobalDefault, false},
		{"permissive", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseGlobal(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGlobal(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseGlobal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		input   string
		want    Annotation
		wantErr bool
	}{
		{"inline", AnnotationInline, false},
		{"FOOTNOTE", AnnotationFootnote, false},
		{"margin", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAnnotation(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAnnotation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseAnnotation(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevel_Predicates(t *testing.T) {
	if !LevelError.ShouldEmit() || !LevelError.ShouldFail() {
		t.Errorf("error must emit and fail")
	}
	if !LevelWarn.ShouldEmit() || LevelWarn.ShouldFail() {
		t.Errorf("warn must emit and not fail")
	}
	if LevelSilent.ShouldEmit() || LevelSilent.ShouldFail() {
		t.Errorf("silent must neither emit nor fail")
	}
}
