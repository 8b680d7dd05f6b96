package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"cite/internal/diag"
	"cite/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("//cite: mock, changed = (\"old\", \"new\")\nfunc F() {}\n")
	fileID := fs.AddVirtual("demo.go", content)

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(
		diag.ValContentChanged,
		source.Span{File: fileID, Start: 0, End: 7},
		"cited content has changed",
	))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput: %s", err, buf.String())
	}

	if output.Count != 1 {
		t.Errorf("count = %d, want 1", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "WARNING" {
		t.Errorf("severity = %s, want WARNING", d.Severity)
	}
	if d.Code != "VAL4001" {
		t.Errorf("code = %s, want VAL4001", d.Code)
	}
	if d.Location.File != "demo.go" {
		t.Errorf("file = %s, want demo.go", d.Location.File)
	}
	if d.Location.StartByte != 0 || d.Location.EndByte != 7 {
		t.Errorf("bytes = %d..%d, want 0..7", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 1 {
		t.Errorf("position = %d:%d, want 1:1", d.Location.StartLine, d.Location.StartCol)
	}
}

// A footnote-annotated mismatch keeps its diff detail in notes; the
// JSON document must carry them without any opt-in, or the changed
// content never reaches the consumer.
func TestJSONCarriesFootnoteDiffDetail(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("demo.go", []byte("//cite: mock, changed = (\"v1\", \"v2\")\nfunc F() {}\n"))

	sp := source.Span{File: fileID, Start: 0, End: 7}
	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(
		diag.ValContentChanged,
		sp,
		"cited content from mock_source_v1 has changed",
	).WithNote(sp, `referenced: "v1"`).WithNote(sp, `current: "v2"`))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	notes := output.Diagnostics[0].Notes
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2:\n%s", len(notes), buf.String())
	}
	if notes[0].Message != `referenced: "v1"` || notes[1].Message != `current: "v2"` {
		t.Errorf("notes lost diff detail: %+v", notes)
	}
	if !bytes.Contains(buf.Bytes(), []byte("v2")) {
		t.Errorf("document must contain the current content:\n%s", buf.String())
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("demo.go", []byte("one\ntwo\nthree\n"))

	bag := diag.NewBag(10)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.NewWarning(
			diag.ValContentChanged,
			source.Span{File: fileID, Start: i, End: i + 1},
			"cited content has changed",
		))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Errorf("count = %d (%d diagnostics), want 2", output.Count, len(output.Diagnostics))
	}
	if bag.Len() != 3 {
		t.Errorf("bag mutated: len = %d, want 3", bag.Len())
	}
}
