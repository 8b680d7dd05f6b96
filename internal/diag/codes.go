package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for unclassified failures.
	UnknownCode Code = 0

	// Directive parsing (1000-1999)
	DirMalformedArgs     Code = 1001
	DirNoMatchingKind    Code = 1002
	DirUnknownKeyword    Code = 1003
	DirDuplicateKeyword  Code = 1004
	DirWrongTarget       Code = 1006
	DirEmptyDirective    Code = 1007
	DirInvalidLevel      Code = 1008
	DirInvalidAnnotation Code = 1009

	// Ambient configuration (2000-2999)
	CfgInvalidLevel      Code = 2001
	CfgInvalidAnnotation Code = 2002
	CfgInvalidGlobal     Code = 2003
	CfgManifestInvalid   Code = 2004

	// Source construction/fetch (3000-3999)
	SrcConstructFailed Code = 3001
	SrcFetchFailed     Code = 3002

	// Validation outcomes (4000-4999)
	ValContentChanged Code = 4001

	// I/O (5000-5999)
	IOLoadFileError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	DirMalformedArgs:     "Malformed directive arguments",
	DirNoMatchingKind:    "No source kind matches the directive arguments",
	DirUnknownKeyword:    "Unknown directive keyword",
	DirDuplicateKeyword:  "Duplicate directive keyword",
	DirWrongTarget:       "Directive attached to an unsupported declaration",
	DirEmptyDirective:    "Empty directive",
	DirInvalidLevel:      "Invalid citation level in directive",
	DirInvalidAnnotation: "Invalid citation annotation in directive",
	CfgInvalidLevel:      "Invalid citation level in configuration",
	CfgInvalidAnnotation: "Invalid citation annotation in configuration",
	CfgInvalidGlobal:     "Invalid citation global mode in configuration",
	CfgManifestInvalid:   "Invalid cite.toml manifest",
	SrcConstructFailed:   "Source construction failed",
	SrcFetchFailed:       "Source fetch failed",
	ValContentChanged:    "Cited content has changed",
	IOLoadFileError:      "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SRC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
