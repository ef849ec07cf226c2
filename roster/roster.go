package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/cardsheet/format"
	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/xlsx"
)

// Read loads the roster stored at path. The format is detected from the
// file content, falling back to the extension.
func Read(path string) ([]model.StudentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return load(path, f, info.Size())
}

// Decode loads a roster held in memory, such as an uploaded file. name is
// only used to break format detection ties.
func Decode(name string, data []byte) ([]model.StudentRecord, error) {
	return load(name, bytes.NewReader(data), int64(len(data)))
}

type source interface {
	io.ReaderAt
	io.Reader
	io.Seeker
}

func load(name string, r source, size int64) ([]model.StudentRecord, error) {
	kind, err := format.Resolve(name, r, size)
	if err != nil {
		// Content with a zip signature that does not open as an archive.
		return nil, fmt.Errorf("%w: detecting roster format: %v", xlsx.ErrNotWorkbook, err)
	}
	if err := kind.Check(); err != nil {
		return nil, err
	}

	switch kind {
	case format.XLSX:
		return ReadXLSX(r, size)
	default:
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return ReadCSV(r)
	}
}

// ReadXLSX loads the first worksheet of a workbook.
func ReadXLSX(r io.ReaderAt, size int64) ([]model.StudentRecord, error) {
	book, err := xlsx.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return FromRows(book.Sheets[0].Values())
}

// ReadCSV loads comma separated text. A UTF-8 byte order mark is ignored
// and rows may have differing field counts.
func ReadCSV(r io.Reader) ([]model.StudentRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return FromRows(rows)
}

// FromRows maps a table of text to records. The first non-blank row is
// the header.
func FromRows(rows [][]string) ([]model.StudentRecord, error) {
	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, fmt.Errorf("%w: no header row", ErrMissingColumn)
	}

	cols, err := mapColumns(rows[start])
	if err != nil {
		return nil, err
	}

	records := make([]model.StudentRecord, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		records = append(records, cols.record(row))
	}
	return records, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
