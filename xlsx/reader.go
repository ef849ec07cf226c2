// Package xlsx reads the cell text of Office Open XML workbooks.
//
// Only what a tabular import needs is decoded: sheet order and names,
// shared and inline strings, numbers and booleans. Styles, formulas
// and merged regions are ignored; a formula cell yields its cached value.
package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"strconv"
	"strings"
)

var (
	// ErrNotWorkbook is returned for input that is not an XLSX package.
	ErrNotWorkbook = errors.New("xlsx: not a workbook")

	// ErrNoSheets is returned when a workbook has no readable worksheet.
	ErrNoSheets = errors.New("xlsx: workbook has no worksheets")

	// ErrPartTooLarge is returned when a package part inflates past
	// MaxPartSize. It wraps ErrNotWorkbook.
	ErrPartTooLarge = fmt.Errorf("%w: part too large", ErrNotWorkbook)
)

// Limits applied to untrusted workbooks.
const (
	// MaxPartSize bounds the decompressed size of any single part.
	MaxPartSize = 32 << 20

	// MaxSheetCells bounds the cells held for one sheet. Each row
	// counts as one cell on top of its populated width.
	MaxSheetCells = 1 << 20
)

// Workbook is a parsed workbook.
type Workbook struct {
	Sheets []*Sheet
}

// Sheet is one worksheet. Each row runs up to its last used cell and
// missing cells in between are CellEmpty.
type Sheet struct {
	Name  string
	Index int
	Rows  [][]Cell
}

// Open reads the workbook stored at filename.
func Open(filename string) (*Workbook, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return NewReader(f, info.Size())
}

// Parse reads a workbook held in memory.
func Parse(data []byte) (*Workbook, error) {
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

// NewReader reads a workbook of the given size from r.
func NewReader(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWorkbook, err)
	}

	p := &pkg{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}
	if p.files[partContentTypes] == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrNotWorkbook, partContentTypes)
	}
	return p.workbook()
}

// SheetCount returns the number of worksheets.
func (w *Workbook) SheetCount() int {
	return len(w.Sheets)
}

// SheetNames returns worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the worksheet at the 0-indexed position.
func (w *Workbook) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(w.Sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(w.Sheets)-1)
	}
	return w.Sheets[index], nil
}

// SheetByName returns the worksheet with the given name, ignoring case.
func (w *Workbook) SheetByName(name string) (*Sheet, error) {
	for _, s := range w.Sheets {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}

// Cell returns the cell at 0-indexed row and col, or an empty cell when
// the position lies outside the used range.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Cell{Row: row, Col: col}
	}
	return s.Rows[row][col]
}

// CellByRef returns the cell at an A1-style reference.
func (s *Sheet) CellByRef(ref string) (Cell, error) {
	col, row, err := ParseCellRef(ref)
	if err != nil {
		return Cell{}, err
	}
	return s.Cell(row, col), nil
}

// RowCount returns the number of rows up to the last used one.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

// Values returns the sheet as text, one slice per row. Trailing empty
// cells are dropped so short rows stay short.
func (s *Sheet) Values() [][]string {
	out := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		end := len(row)
		for end > 0 && row[end-1].IsEmpty() {
			end--
		}
		vals := make([]string, end)
		for j := 0; j < end; j++ {
			vals[j] = row[j].Value
		}
		out[i] = vals
	}
	return out
}

// pkg is the opened zip package
type pkg struct {
	files   map[string]*zip.File
	strings []string
}

func (p *pkg) read(name string) ([]byte, error) {
	f := p.files[name]
	if f == nil {
		return nil, fmt.Errorf("%w: missing part %s", ErrNotWorkbook, name)
	}
	if f.UncompressedSize64 > MaxPartSize {
		return nil, fmt.Errorf("%w: part %s is %d bytes", ErrPartTooLarge, name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWorkbook, err)
	}
	defer rc.Close()

	// The header size is advisory; bound what is actually inflated.
	data, err := io.ReadAll(io.LimitReader(rc, MaxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrNotWorkbook, name, err)
	}
	if len(data) > MaxPartSize {
		return nil, fmt.Errorf("%w: part %s", ErrPartTooLarge, name)
	}
	return data, nil
}

func (p *pkg) decode(name string, v any) error {
	data, err := p.read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrNotWorkbook, name, err)
	}
	return nil
}

func (p *pkg) workbook() (*Workbook, error) {
	var wb workbookXML
	if err := p.decode(partWorkbook, &wb); err != nil {
		return nil, err
	}

	// Shared strings are optional; writers using inline strings omit them.
	if p.files[partSharedStrings] != nil {
		var sst sharedStringsXML
		if err := p.decode(partSharedStrings, &sst); err != nil {
			return nil, err
		}
		p.strings = make([]string, len(sst.Items))
		for i, si := range sst.Items {
			p.strings[i] = si.text()
		}
	}

	targets := map[string]string{}
	var rels relationshipsXML
	if p.files[partWorkbookRels] != nil {
		if err := p.decode(partWorkbookRels, &rels); err != nil {
			return nil, err
		}
		for _, rel := range rels.Rels {
			targets[rel.ID] = resolvePart(rel.Target)
		}
	}

	book := &Workbook{}
	for i, ref := range wb.Sheets {
		name := targets[ref.RID]
		if name == "" {
			name = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}
		if p.files[name] == nil {
			continue
		}
		sheet, err := p.sheet(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", ref.Name, err)
		}
		sheet.Name = ref.Name
		sheet.Index = len(book.Sheets)
		book.Sheets = append(book.Sheets, sheet)
	}
	if len(book.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	return book, nil
}

// resolvePart turns a workbook relationship target into a package path.
func resolvePart(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("xl", target)
}

func (p *pkg) sheet(name string) (*Sheet, error) {
	var ws worksheetXML
	if err := p.decode(name, &ws); err != nil {
		return nil, err
	}

	// Each row is only as wide as its last used cell.
	var rows [][]Cell
	budget := MaxSheetCells
	place := func(cell Cell) error {
		need, width := 0, 0
		if cell.Row < len(rows) {
			width = len(rows[cell.Row])
		} else {
			need = cell.Row + 1 - len(rows)
		}
		if cell.Col >= width {
			need += cell.Col + 1 - width
		}
		if need > budget {
			return fmt.Errorf("%w: sheet exceeds %d cells at %s", ErrNotWorkbook, MaxSheetCells, cell.Ref())
		}
		budget -= need

		for len(rows) <= cell.Row {
			rows = append(rows, nil)
		}
		row := rows[cell.Row]
		for j := len(row); j <= cell.Col; j++ {
			row = append(row, Cell{Row: cell.Row, Col: j})
		}
		row[cell.Col] = cell
		rows[cell.Row] = row
		return nil
	}

	next := 0
	for _, row := range ws.Rows {
		if row.R < 0 || row.R > MaxRows {
			return nil, fmt.Errorf("%w: bad row number %d", ErrNotWorkbook, row.R)
		}
		r := row.R - 1
		if row.R == 0 {
			r = next
		}
		if r >= MaxRows {
			return nil, fmt.Errorf("%w: more than %d rows", ErrNotWorkbook, MaxRows)
		}
		next = r + 1

		for i, c := range row.Cells {
			col, cr := i, r
			if c.R != "" {
				var err error
				col, cr, err = ParseCellRef(c.R)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrNotWorkbook, err)
				}
			} else if col >= MaxColumns {
				return nil, fmt.Errorf("%w: more than %d columns", ErrNotWorkbook, MaxColumns)
			}
			cell := p.cell(c)
			if cell.Type == CellEmpty {
				continue
			}
			cell.Row, cell.Col = cr, col
			if err := place(cell); err != nil {
				return nil, err
			}
		}
	}
	return &Sheet{Rows: rows}, nil
}

func (p *pkg) cell(c cellXML) Cell {
	switch c.T {
	case "s":
		idx, err := strconv.Atoi(c.V)
		if err != nil || idx < 0 || idx >= len(p.strings) {
			return Cell{}
		}
		return Cell{Type: CellString, Value: p.strings[idx]}
	case "inlineStr":
		if c.Is == nil {
			return Cell{}
		}
		return Cell{Type: CellString, Value: c.Is.text()}
	case "str":
		return Cell{Type: CellString, Value: c.V}
	case "b":
		if c.V == "1" {
			return Cell{Type: CellBoolean, Value: "TRUE"}
		}
		return Cell{Type: CellBoolean, Value: "FALSE"}
	case "e":
		return Cell{Type: CellError, Value: c.V}
	}
	if c.V == "" {
		return Cell{}
	}
	return Cell{Type: CellNumber, Value: formatNumber(c.V)}
}

// formatNumber renders whole numbers stored in float form ("24001.0",
// "2.4001E4") as plain integers. Other values are returned unchanged.
func formatNumber(v string) string {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.Abs(f) >= 1e15 || f != math.Trunc(f) {
		return v
	}
	return strconv.FormatInt(int64(f), 10)
}
