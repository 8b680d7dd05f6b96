package source

import (
	"testing"
)

func TestFileSet_ResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.go", []byte("package x\n\nfunc F() {}\n"))

	tests := []struct {
		name      string
		span      Span
		wantStart LineCol
		wantEnd   LineCol
	}{
		{
			name:      "first line start",
			span:      Span{File: id, Start: 0, End: 7},
			wantStart: LineCol{Line: 1, Col: 1},
			wantEnd:   LineCol{Line: 1, Col: 8},
		},
		{
			name:      "third line",
			span:      Span{File: id, Start: 11, End: 15},
			wantStart: LineCol{Line: 3, Col: 1},
			wantEnd:   LineCol{Line: 3, Col: 5},
		},
		{
			name:      "empty second line",
			span:      Span{File: id, Start: 10, End: 10},
			wantStart: LineCol{Line: 2, Col: 1},
			wantEnd:   LineCol{Line: 2, Col: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Resolve() = %+v..%+v, want %+v..%+v", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.go", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFileSet_Normalization(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("crlf.go", []byte("a\r\nb"), 0)
	f := fs.Get(id)
	// Add does not normalize; normalization happens in Load. Virtual
	// content is stored as given.
	if string(f.Content) != "a\r\nb" {
		t.Errorf("Add must not rewrite content: %q", f.Content)
	}

	content, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Fatalf("expected CRLF normalization")
	}
	if string(content) != "a\nb\rc\n" {
		t.Errorf("normalizeCRLF = %q", content)
	}

	content, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !hadBOM || string(content) != "x" {
		t.Errorf("removeBOM = %q, hadBOM=%v", content, hadBOM)
	}
}

func TestFileSet_GetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a/b.go", []byte("x"))
	id2 := fs.AddVirtual("a/b.go", []byte("y"))

	f, ok := fs.GetByPath("a/b.go")
	if !ok {
		t.Fatalf("expected file")
	}
	if f.ID != id2 {
		t.Errorf("index should point at latest version: got %d, want %d", f.ID, id2)
	}
	if _, ok := fs.GetByPath("missing.go"); ok {
		t.Errorf("unexpected hit for missing path")
	}
}
