package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
		ext    string
	}{
		{XLSX, "XLSX", ".xlsx"},
		{XLS, "XLS", ".xls"},
		{CSV, "CSV", ".csv"},
		{Unknown, "Unknown", ""},
		{Format(99), "Unknown", ""},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
		if got := tt.format.Extension(); got != tt.ext {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.ext)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"students.xlsx", XLSX},
		{"Students.XLSX", XLSX},
		{"macros.xlsm", XLSX},
		{"old.xls", XLS},
		{"OLD.XLS", XLS},
		{"export.csv", CSV},
		{"/uploads/batch 2024.csv", CSV},
		{"notes.txt", Unknown},
		{"students", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"ole compound file", append(append([]byte{}, oleMagic...), 0, 0, 0), XLS},
		{"zip header", []byte("PK\x03\x04rest"), Unknown},
		{"csv", []byte("AD NO,Student Name\n24001,Asha\n"), CSV},
		{"csv with bom", []byte("\xef\xbb\xbfAD NO,Name\r\n"), CSV},
		{"text without comma", []byte("hello world\n"), Unknown},
		{"binary", []byte{0x00, ',', 0x01}, Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		if _, err := zw.Create(name); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"workbook", zipWith(t, "[Content_Types].xml", "xl/workbook.xml"), XLSX},
		{"word document", zipWith(t, "[Content_Types].xml", "word/document.xml"), Unknown},
		{"csv", []byte("a,b\n1,2\n"), CSV},
		{"xls", oleMagic, XLS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	book := zipWith(t, "xl/workbook.xml")
	got, err := Resolve("upload.bin", bytes.NewReader(book), int64(len(book)))
	if err != nil || got != XLSX {
		t.Errorf("Resolve(workbook) = %v, %v, want XLSX", got, err)
	}

	single := []byte("24001\n24002\n")
	got, err = Resolve("ids.csv", bytes.NewReader(single), int64(len(single)))
	if err != nil || got != CSV {
		t.Errorf("Resolve(single column csv) = %v, %v, want CSV", got, err)
	}
}

func TestCheck(t *testing.T) {
	if err := XLSX.Check(); err != nil {
		t.Errorf("XLSX.Check() = %v", err)
	}
	if err := CSV.Check(); err != nil {
		t.Errorf("CSV.Check() = %v", err)
	}
	for _, f := range []Format{XLS, Unknown} {
		if err := f.Check(); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%v.Check() = %v, want ErrUnsupported", f, err)
		}
	}
}
