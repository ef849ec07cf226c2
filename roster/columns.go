package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/cardsheet/model"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("roster: missing column")

// Column identifies a roster column.
type Column int

const (
	ColID Column = iota
	ColName
	ColBatch
	ColQuota
	ColDepartment
	ColCommunity
	ColType
	numColumns
)

var headers = [numColumns]string{"AD NO", "Student Name", "Batch", "Quota", "Dept", "COMM", "TYPE"}

// Header returns the column's header text as exported.
func (c Column) Header() string {
	if c < 0 || c >= numColumns {
		return ""
	}
	return headers[c]
}

// Required reports whether rosters must carry the column.
func (c Column) Required() bool {
	return c != ColType
}

// Headers returns the header row for a roster template.
func Headers() []string {
	return append([]string(nil), headers[:]...)
}

// columnMap records the sheet column offset of each roster column, or -1.
type columnMap [numColumns]int

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func mapColumns(header []string) (columnMap, error) {
	var m columnMap
	for i := range m {
		m[i] = -1
	}
	for i, h := range header {
		norm := normalizeHeader(h)
		for c := ColID; c < numColumns; c++ {
			if m[c] < 0 && norm == strings.ToLower(headers[c]) {
				m[c] = i
				break
			}
		}
	}

	var missing []string
	for c := ColID; c < numColumns; c++ {
		if m[c] < 0 && c.Required() {
			missing = append(missing, headers[c])
		}
	}
	if len(missing) > 0 {
		return m, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return m, nil
}

func (m columnMap) record(row []string) model.StudentRecord {
	get := func(c Column) string {
		i := m[c]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return model.StudentRecord{
		ID:         get(ColID),
		Name:       get(ColName),
		Batch:      get(ColBatch),
		Quota:      get(ColQuota),
		Department: get(ColDepartment),
		Community:  get(ColCommunity),
		Type:       get(ColType),
	}
}
