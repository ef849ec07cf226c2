package render

import (
	"fmt"
	"io"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/model"
)

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpStroke OpKind = iota
	OpFill
	OpLine
	OpText
	OpImage
)

func (k OpKind) String() string {
	switch k {
	case OpStroke:
		return "stroke"
	case OpFill:
		return "fill"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	case OpImage:
		return "image"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing operation.
type Op struct {
	Kind   OpKind
	Page   int
	Box    model.BBox // stroke, fill, image
	From   model.Point
	To     model.Point
	At     model.Point // text anchor
	Text   string      // text content or image name
	Opts   TextOptions
	Color  config.Color
	Weight float64
	Size   int // image data length
}

// Recorder is a Sheet that keeps every operation in memory. It never
// produces a real document; Output writes a one-line-per-operation listing.
type Recorder struct {
	ops     []Op
	pages   int
	current int
	images  map[string]bool
	err     error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{images: make(map[string]bool)}
}

func (r *Recorder) AddPage() {
	r.pages++
	r.current = r.pages
}

func (r *Recorder) PageCount() int {
	return r.pages
}

func (r *Recorder) SetPage(n int) {
	if n < 1 || n > r.pages {
		r.fail(fmt.Errorf("page %d out of range (1-%d)", n, r.pages))
		return
	}
	r.current = n
}

func (r *Recorder) StrokeRect(box model.BBox, c config.Color, weight float64) {
	r.record(Op{Kind: OpStroke, Box: box, Color: c, Weight: weight})
}

func (r *Recorder) FillRect(box model.BBox, c config.Color) {
	r.record(Op{Kind: OpFill, Box: box, Color: c})
}

func (r *Recorder) Line(from, to model.Point, c config.Color, weight float64) {
	r.record(Op{Kind: OpLine, From: from, To: to, Color: c, Weight: weight})
}

func (r *Recorder) Text(at model.Point, s string, opts TextOptions) {
	r.record(Op{Kind: OpText, At: at, Text: s, Opts: opts, Color: opts.Color})
}

func (r *Recorder) Image(name string, png []byte, box model.BBox) error {
	if r.images[name] {
		return fmt.Errorf("image %q already registered", name)
	}
	if len(png) == 0 {
		return fmt.Errorf("image %q has no data", name)
	}
	r.images[name] = true
	r.record(Op{Kind: OpImage, Box: box, Text: name, Size: len(png)})
	return nil
}

func (r *Recorder) Output(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	for _, op := range r.ops {
		var err error
		switch op.Kind {
		case OpText:
			_, err = fmt.Fprintf(w, "%d %s %.2f,%.2f %q\n", op.Page, op.Kind, op.At.X, op.At.Y, op.Text)
		case OpLine:
			_, err = fmt.Fprintf(w, "%d %s %.2f,%.2f %.2f,%.2f\n", op.Page, op.Kind, op.From.X, op.From.Y, op.To.X, op.To.Y)
		case OpImage:
			_, err = fmt.Fprintf(w, "%d %s %s %.2f,%.2f %.2fx%.2f\n", op.Page, op.Kind, op.Text, op.Box.X, op.Box.Y, op.Box.Width, op.Box.Height)
		default:
			_, err = fmt.Fprintf(w, "%d %s %.2f,%.2f %.2fx%.2f\n", op.Page, op.Kind, op.Box.X, op.Box.Y, op.Box.Width, op.Box.Height)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Err returns the first misuse recorded, such as drawing before AddPage.
func (r *Recorder) Err() error {
	return r.err
}

// Ops returns all recorded operations in order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// OpsOn returns the operations recorded on page n.
func (r *Recorder) OpsOn(n int) []Op {
	var ops []Op
	for _, op := range r.ops {
		if op.Page == n {
			ops = append(ops, op)
		}
	}
	return ops
}

// Texts returns the strings drawn on page n, in drawing order.
func (r *Recorder) Texts(n int) []string {
	var texts []string
	for _, op := range r.OpsOn(n) {
		if op.Kind == OpText {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// Count returns the number of operations of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) record(op Op) {
	if r.current == 0 {
		r.fail(fmt.Errorf("%s drawn before the first page", op.Kind))
		return
	}
	op.Page = r.current
	r.ops = append(r.ops, op)
}

func (r *Recorder) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
