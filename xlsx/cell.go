package xlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// Excel sheet limits.
const (
	MaxColumns = 16384
	MaxRows    = 1048576
)

// CellType is the kind of value a cell holds.
type CellType int

const (
	CellEmpty CellType = iota
	CellString
	CellNumber
	CellBoolean
	CellError
)

func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBoolean:
		return "boolean"
	case CellError:
		return "error"
	default:
		return "unknown"
	}
}

// Cell is one worksheet cell with its display text.
type Cell struct {
	Row   int // 0-indexed
	Col   int // 0-indexed
	Type  CellType
	Value string
}

// IsEmpty reports whether the cell has no text.
func (c Cell) IsEmpty() bool {
	return c.Type == CellEmpty || strings.TrimSpace(c.Value) == ""
}

// Ref returns the A1-style reference for the cell.
func (c Cell) Ref() string {
	return CellRef(c.Col, c.Row)
}

// ParseCellRef splits an A1-style reference into 0-indexed column and row.
// Absolute markers ("$B$7") are accepted.
func ParseCellRef(ref string) (col, row int, err error) {
	ref = strings.ReplaceAll(ref, "$", "")
	split := strings.IndexFunc(ref, func(r rune) bool { return r >= '0' && r <= '9' })
	switch {
	case ref == "":
		return 0, 0, fmt.Errorf("empty cell reference")
	case split == 0:
		return 0, 0, fmt.Errorf("cell reference %q has no column", ref)
	case split < 0:
		return 0, 0, fmt.Errorf("cell reference %q has no row", ref)
	}

	col = ColumnIndex(ref[:split])
	if col < 0 {
		return 0, 0, fmt.Errorf("cell reference %q: bad column %q", ref, ref[:split])
	}
	n, err := strconv.Atoi(ref[split:])
	if err != nil || n < 1 || n > MaxRows {
		return 0, 0, fmt.Errorf("cell reference %q: bad row %q", ref, ref[split:])
	}
	return col, n - 1, nil
}

// ColumnIndex converts column letters to a 0-indexed column, or -1 if
// letters is not a valid column name. A is 0, Z is 25, AA is 26.
func ColumnIndex(letters string) int {
	if letters == "" || len(letters) > 3 {
		return -1
	}
	n := 0
	for _, c := range strings.ToUpper(letters) {
		if c < 'A' || c > 'Z' {
			return -1
		}
		n = n*26 + int(c-'A'+1)
	}
	if n > MaxColumns {
		return -1
	}
	return n - 1
}

// ColumnName is the inverse of ColumnIndex.
func ColumnName(index int) string {
	if index < 0 || index >= MaxColumns {
		return ""
	}
	var buf [3]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// CellRef builds an A1-style reference from 0-indexed coordinates.
func CellRef(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}
