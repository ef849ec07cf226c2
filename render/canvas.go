package render

import (
	"io"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/model"
)

// Font selects a face. Style is "" for regular or "B" for bold.
type Font struct {
	Family string
	Style  string
	Size   float64 // points
}

// TextOptions controls how a string is placed.
type TextOptions struct {
	Font  Font
	Color config.Color
	// Angle rotates the text counter-clockwise, in degrees, about the
	// anchor point.
	Angle float64
	// Center places the anchor at the middle of the baseline instead of
	// its start.
	Center bool
}

// Canvas is a drawing surface positioned on one page at a time.
// Coordinates are page coordinates with the origin at the top-left.
type Canvas interface {
	// SetPage selects the 1-indexed page that subsequent calls draw on.
	SetPage(n int)
	StrokeRect(box model.BBox, c config.Color, weight float64)
	FillRect(box model.BBox, c config.Color)
	Line(from, to model.Point, c config.Color, weight float64)
	// Text draws s with its baseline anchored at at.
	Text(at model.Point, s string, opts TextOptions)
	// Image embeds PNG data scaled to box. Names must be unique per sheet.
	Image(name string, png []byte, box model.BBox) error
}

// Sheet is a multi-page Canvas that can be serialized once complete.
type Sheet interface {
	Canvas
	// AddPage appends a page and makes it current.
	AddPage()
	PageCount() int
	// Output serializes the sheet. The sheet must not be drawn on afterwards.
	Output(w io.Writer) error
}

// Position identifies where on a sheet a render call draws.
type Position struct {
	Page int // 1-indexed
}
