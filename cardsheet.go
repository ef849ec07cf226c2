// Package cardsheet provides a fluent API for turning student rosters into
// printable sheets of identity cards.
//
// Basic usage:
//
//	doc, err := cardsheet.Open("students.xlsx").Generate(ctx)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("student-cards.pdf", doc.Bytes(), 0o644)
//
// With options:
//
//	err := cardsheet.New(records).
//	    Department("CSE").
//	    Capacity(12).
//	    Logger(logger).
//	    Save(ctx, "cse-cards.pdf")
//
// The lower-level assemble, render and layout packages are also available
// for callers that need their own drawing surface or page model.
package cardsheet

import "github.com/tsawler/cardsheet/model"

// DefaultFilename is the name offered for generated documents.
const DefaultFilename = "student-cards.pdf"

// Open returns a Sheet reading its records from the roster at path. The
// file is read by the first terminal operation.
//
// Example:
//
//	doc, err := cardsheet.Open("students.csv").Generate(ctx)
func Open(path string) *Sheet {
	return &Sheet{
		path:    path,
		options: defaultOptions(),
	}
}

// New returns a Sheet for records already in memory.
func New(records []model.StudentRecord) *Sheet {
	return &Sheet{
		records: append([]model.StudentRecord(nil), records...),
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must wraps a call returning (T, error) and panics if the error is
// non-nil. It is intended for scripts and tests.
//
// Example:
//
//	pages := cardsheet.Must(cardsheet.Open("students.xlsx").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
