package scancode

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/tsawler/cardsheet/model"
)

func TestPayload(t *testing.T) {
	rec := model.StudentRecord{ID: "24CS001", Name: "Anu Priya", Department: "CSE", Quota: "GQ"}
	want := "ID:24CS001,Name:Anu Priya,Dept:CSE"
	if got := Payload(rec); got != want {
		t.Errorf("Payload() = %q, want %q", got, want)
	}
}

func TestQRGenerate(t *testing.T) {
	payload := "ID:24CS001,Name:Anu Priya,Dept:CSE"
	ref, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		t.Fatal(err)
	}
	modules := len(ref.Bitmap())

	tests := []struct {
		width    int
		wantSide int
	}{
		{15, modules},
		{modules, modules},
		{modules + 1, 2 * modules},
		{200, ((200 + modules - 1) / modules) * modules},
	}

	for _, tt := range tests {
		data, err := NewQR().Generate(context.Background(), payload, tt.width)
		if err != nil {
			t.Fatalf("Generate(width=%d) error: %v", tt.width, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Generate(width=%d) did not produce a PNG: %v", tt.width, err)
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() {
			t.Errorf("width=%d: image is %dx%d, want square", tt.width, b.Dx(), b.Dy())
		}
		if b.Dx() != tt.wantSide {
			t.Errorf("width=%d: side = %d, want %d", tt.width, b.Dx(), tt.wantSide)
		}
		if b.Dx() < tt.width {
			t.Errorf("width=%d: side %d smaller than requested", tt.width, b.Dx())
		}
	}
}

func TestQRDeterministic(t *testing.T) {
	gen := NewQR()
	a, err := gen.Generate(context.Background(), "ID:1,Name:A,Dept:B", 15)
	if err != nil {
		t.Fatal(err)
	}
	b, err := gen.Generate(context.Background(), "ID:1,Name:A,Dept:B", 15)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same payload produced different images")
	}
}

func TestQRCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewQR().Generate(ctx, "ID:1", 15); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestRasterize(t *testing.T) {
	bitmap := [][]bool{
		{true, false},
		{false, true},
	}

	img := Rasterize(bitmap, 6)
	if img.Bounds().Dx() != 6 {
		t.Fatalf("side = %d, want 6", img.Bounds().Dx())
	}
	if img.GrayAt(0, 0).Y != 0 || img.GrayAt(2, 2).Y != 0 {
		t.Error("dark module not black")
	}
	if img.GrayAt(3, 0).Y != 0xff || img.GrayAt(0, 5).Y != 0xff {
		t.Error("light module not white")
	}
	if img.GrayAt(5, 5).Y != 0 {
		t.Error("bottom-right module not black")
	}

	if empty := Rasterize(nil, 10); !empty.Bounds().Empty() {
		t.Error("empty bitmap should rasterize to an empty image")
	}
}

func TestFunc(t *testing.T) {
	boom := errors.New("generator offline")
	var gen Generator = Func(func(ctx context.Context, payload string, width int) ([]byte, error) {
		if payload == "bad" {
			return nil, boom
		}
		return []byte(payload), nil
	})

	if out, err := gen.Generate(context.Background(), "ok", 15); err != nil || string(out) != "ok" {
		t.Errorf("Generate(ok) = %q, %v", out, err)
	}
	if _, err := gen.Generate(context.Background(), "bad", 15); !errors.Is(err, boom) {
		t.Errorf("Generate(bad) error = %v", err)
	}
}
