// Package scancode produces the machine-scannable images embedded in
// cards.
//
// The [Generator] interface is the boundary to the code-image collaborator.
// [QR] is the built-in implementation; tests and callers with their own
// service can plug in any [Func].
package scancode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"

	"github.com/tsawler/cardsheet/model"
)

// Generator turns a payload into an embeddable PNG image at least width
// pixels wide. A failed generation must be reported as an error rather
// than blocking; the generator is called once per card, in order.
type Generator interface {
	Generate(ctx context.Context, payload string, width int) ([]byte, error)
}

// Func adapts an ordinary function to the Generator interface.
type Func func(ctx context.Context, payload string, width int) ([]byte, error)

// Generate calls f(ctx, payload, width).
func (f Func) Generate(ctx context.Context, payload string, width int) ([]byte, error) {
	return f(ctx, payload, width)
}

// Payload builds the composite string encoded on a record's card.
func Payload(rec model.StudentRecord) string {
	return fmt.Sprintf("ID:%s,Name:%s,Dept:%s", rec.ID, rec.Name, rec.Department)
}

// QR generates QR codes locally.
type QR struct {
	Level  qrcode.RecoveryLevel
	Border bool // include the 4-module quiet zone
}

// NewQR returns a QR generator with medium error correction and a quiet
// zone.
func NewQR() *QR {
	return &QR{Level: qrcode.Medium, Border: true}
}

// Generate encodes payload as a QR code PNG.
//
// The requested width is a minimum: a code is never drawn with less than
// one pixel per module, so small widths yield the smallest lossless image.
func (q *QR) Generate(ctx context.Context, payload string, width int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code, err := qrcode.New(payload, q.Level)
	if err != nil {
		return nil, fmt.Errorf("encoding QR payload: %w", err)
	}
	code.DisableBorder = !q.Border

	img := Rasterize(code.Bitmap(), width)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding QR image: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize draws a module bitmap as a grayscale image. The side length is
// width rounded up to a whole number of pixels per module.
func Rasterize(bitmap [][]bool, width int) *image.Gray {
	modules := len(bitmap)
	if modules == 0 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}

	src := image.NewGray(image.Rect(0, 0, modules, modules))
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				src.SetGray(x, y, color.Gray{Y: 0})
			} else {
				src.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}

	scale := (width + modules - 1) / modules
	if scale <= 1 {
		return src
	}

	side := scale * modules
	dst := image.NewGray(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
