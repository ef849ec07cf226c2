package roster

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/cardsheet/model"
)

// MaxNameLength is the longest accepted student name, in characters.
const MaxNameLength = 50

// FieldError is one rejected value.
type FieldError struct {
	Record int    // 0-indexed position in the roster
	ID     string // identity number, possibly empty
	Field  string // column header
	Reason string
}

func (e FieldError) String() string {
	if e.ID == "" {
		return fmt.Sprintf("record %d: %s %s", e.Record+1, e.Field, e.Reason)
	}
	return fmt.Sprintf("record %d (%s): %s %s", e.Record+1, e.ID, e.Field, e.Reason)
}

// ValidationError lists every problem found in a roster.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "roster: " + e.Problems[0].String()
	}
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("roster: %d problems: %s", len(e.Problems), strings.Join(lines, "; "))
}

// Validate checks that every required field is present and names fit on
// a card. It returns a *ValidationError or nil.
func Validate(records []model.StudentRecord) error {
	var problems []FieldError
	for i, rec := range records {
		values := rec.Fields()
		for c := ColID; c < numColumns; c++ {
			if c.Required() && values[c] == "" {
				problems = append(problems, FieldError{Record: i, ID: rec.ID, Field: c.Header(), Reason: "is empty"})
			}
		}
		if n := utf8.RuneCountInString(rec.Name); n > MaxNameLength {
			problems = append(problems, FieldError{
				Record: i,
				ID:     rec.ID,
				Field:  ColName.Header(),
				Reason: fmt.Sprintf("is %d characters, limit %d", n, MaxNameLength),
			})
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
