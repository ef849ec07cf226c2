// Package format detects the file formats accepted as student rosters.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is a roster file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XLSX is an Office Open XML workbook.
	XLSX
	// XLS is a legacy binary Excel workbook.
	XLS
	// CSV is comma separated text with a header row.
	CSV
)

// ErrUnsupported is returned for formats that are recognized but cannot
// be read.
var ErrUnsupported = errors.New("unsupported roster format")

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

func (f Format) String() string {
	switch f {
	case XLSX:
		return "XLSX"
	case XLS:
		return "XLS"
	case CSV:
		return "CSV"
	default:
		return "Unknown"
	}
}

// Extension returns the usual file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XLSX:
		return ".xlsx"
	case XLS:
		return ".xls"
	case CSV:
		return ".csv"
	default:
		return ""
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case XLS:
		return "application/vnd.ms-excel"
	case CSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// Readable reports whether rosters in this format can be parsed.
func (f Format) Readable() bool {
	return f == XLSX || f == CSV
}

// Check returns nil for readable formats and an ErrUnsupported error
// otherwise.
func (f Format) Check() error {
	if f.Readable() {
		return nil
	}
	if f == XLS {
		return fmt.Errorf("%w: legacy .xls workbooks must be saved as .xlsx", ErrUnsupported)
	}
	return fmt.Errorf("%w: expected .xlsx or .csv", ErrUnsupported)
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return XLSX
	case ".xls":
		return XLS
	case ".csv":
		return CSV
	default:
		return Unknown
	}
}

// DetectFromMagic identifies a format from leading bytes. A zip header
// alone is not enough to tell a workbook from other zip packages, so it
// yields Unknown; use DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, oleMagic):
		return XLS
	case bytes.HasPrefix(data, zipMagic):
		return Unknown
	case looksLikeCSV(data):
		return CSV
	default:
		return Unknown
	}
}

// DetectFromReader inspects content, opening zip packages to look for a
// workbook part.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	head := make([]byte, 512)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	head = head[:n]

	if !bytes.HasPrefix(head, zipMagic) {
		return DetectFromMagic(head), nil
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if f.Name == "xl/workbook.xml" {
			return XLSX, nil
		}
	}
	return Unknown, nil
}

// Resolve combines content and filename detection. Content wins when it
// is conclusive; the extension breaks ties for plain text.
func Resolve(filename string, r io.ReaderAt, size int64) (Format, error) {
	byContent, err := DetectFromReader(r, size)
	if err != nil {
		return Unknown, err
	}
	if byContent != Unknown {
		return byContent, nil
	}
	return Detect(filename), nil
}

// looksLikeCSV reports whether data is UTF-8 text whose first line
// contains a comma.
func looksLikeCSV(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(data) == 0 || bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	line := data
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		line = data[:i]
	}
	if !utf8.Valid(line) {
		return false
	}
	return bytes.IndexByte(line, ',') >= 0
}
