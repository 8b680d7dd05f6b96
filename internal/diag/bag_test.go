package diag

import (
	"testing"

	"cite/internal/source"
)

func TestBag_Limit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(ValContentChanged, source.Span{}, "one")) {
		t.Fatalf("first add rejected")
	}
	if !b.Add(NewError(ValContentChanged, source.Span{}, "two")) {
		t.Fatalf("second add rejected")
	}
	if b.Add(NewError(ValContentChanged, source.Span{}, "three")) {
		t.Errorf("add above limit must return false")
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBag_HasErrorsWarnings(t *testing.T) {
	b := NewBag(10)
	if b.HasErrors() || b.HasWarnings() {
		t.Fatalf("empty bag must have no errors/warnings")
	}
	b.Add(New(SevInfo, UnknownCode, source.Span{}, "info"))
	if b.HasWarnings() {
		t.Errorf("info is not a warning")
	}
	b.Add(NewWarning(ValContentChanged, source.Span{}, "warn"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Errorf("expected warnings only")
	}
	b.Add(NewError(DirUnknownKeyword, source.Span{}, "err"))
	if !b.HasErrors() {
		t.Errorf("expected errors")
	}
}

func TestBag_MergeAndSort(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(ValContentChanged, source.Span{File: 2, Start: 5, End: 9}, "late"))

	b := NewBag(2)
	b.Add(NewWarning(ValContentChanged, source.Span{File: 1, Start: 0, End: 4}, "early"))
	b.Add(NewError(DirUnknownKeyword, source.Span{File: 1, Start: 0, End: 4}, "same span, error first"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merged Len() = %d, want 3", a.Len())
	}

	a.Sort()
	items := a.Items()
	if items[0].Severity != SevError || items[0].Primary.File != 1 {
		t.Errorf("expected file-1 error first, got %+v", items[0])
	}
	if items[1].Severity != SevWarning {
		t.Errorf("expected file-1 warning second, got %+v", items[1])
	}
	if items[2].Primary.File != 2 {
		t.Errorf("expected file-2 last, got %+v", items[2])
	}
}

func TestBag_Dedup(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{File: 1, Start: 3, End: 7}
	b.Add(NewError(ValContentChanged, sp, "a"))
	b.Add(NewError(ValContentChanged, sp, "b"))
	b.Add(NewError(DirUnknownKeyword, sp, "c"))
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Dedup Len() = %d, want 2", b.Len())
	}
}

func TestCode_ID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{DirUnknownKeyword, "DIR1003"},
		{CfgInvalidGlobal, "CFG2003"},
		{SrcFetchFailed, "SRC3002"},
		{ValContentChanged, "VAL4001"},
		{IOLoadFileError, "IO5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
