package render

import (
	"bytes"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/model"
)

// PDF is a Sheet backed by gofpdf. Units are millimetres.
type PDF struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string

	fontSet  bool
	fontPage int // page the current font was last emitted on
}

// NewPDF creates an empty PDF sheet sized to cfg.Page.
func NewPDF(cfg config.Config) *PDF {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: cfg.Page.Width, Ht: cfg.Page.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)

	created := cfg.Document.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetTitle(cfg.Document.Title, true)
	pdf.SetAuthor(cfg.Document.Author, true)
	pdf.SetCreator(cfg.Document.Creator, true)

	return &PDF{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *PDF) AddPage() {
	p.pdf.AddPage()
	// AddPage re-emits the current font on the new page
	p.fontPage = p.pdf.PageNo()
}

func (p *PDF) PageCount() int {
	return p.pdf.PageCount()
}

func (p *PDF) SetPage(n int) {
	if n != p.pdf.PageNo() {
		p.pdf.SetPage(n)
	}
}

func (p *PDF) StrokeRect(box model.BBox, c config.Color, weight float64) {
	p.pdf.SetDrawColor(c.R, c.G, c.B)
	p.pdf.SetLineWidth(weight)
	p.pdf.Rect(box.X, box.Y, box.Width, box.Height, "D")
}

func (p *PDF) FillRect(box model.BBox, c config.Color) {
	p.pdf.SetFillColor(c.R, c.G, c.B)
	p.pdf.Rect(box.X, box.Y, box.Width, box.Height, "F")
}

func (p *PDF) Line(from, to model.Point, c config.Color, weight float64) {
	p.pdf.SetDrawColor(c.R, c.G, c.B)
	p.pdf.SetLineWidth(weight)
	p.pdf.Line(from.X, from.Y, to.X, to.Y)
}

func (p *PDF) Text(at model.Point, s string, opts TextOptions) {
	p.useFont(opts.Font)
	p.pdf.SetTextColor(opts.Color.R, opts.Color.G, opts.Color.B)
	s = p.tr(s)

	if opts.Angle != 0 {
		p.pdf.TransformBegin()
		p.pdf.TransformRotate(opts.Angle, at.X, at.Y)
	}
	x := at.X
	if opts.Center {
		x -= p.pdf.GetStringWidth(s) / 2
	}
	p.pdf.Text(x, at.Y, s)
	if opts.Angle != 0 {
		p.pdf.TransformEnd()
	}
}

func (p *PDF) Image(name string, data []byte, box model.BBox) error {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if p.pdf.Err() {
		return p.pdf.Error()
	}
	p.pdf.ImageOptions(name, box.X, box.Y, box.Width, box.Height, false, opts, 0, "")
	return p.pdf.Error()
}

func (p *PDF) Output(w io.Writer) error {
	return p.pdf.Output(w)
}

// useFont selects f. gofpdf only writes a font operator when the font
// changes, so a page revisited with SetPage gets the font forced again.
func (p *PDF) useFont(f Font) {
	page := p.pdf.PageNo()
	if p.fontSet && page != p.fontPage {
		p.pdf.SetFontSize(f.Size + 1)
	}
	p.pdf.SetFont(f.Family, f.Style, f.Size)
	p.fontSet = true
	p.fontPage = page
}
