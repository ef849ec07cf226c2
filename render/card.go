package render

import (
	"context"
	"fmt"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/layout"
	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/scancode"
)

// CodeError reports a failed scannable-code generation for one card.
type CodeError struct {
	ID  string
	Err error
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("generating code for %s: %v", e.ID, e.Err)
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

// CardRenderer draws single cards. It holds no per-document state.
type CardRenderer struct {
	cfg   config.Config
	codes scancode.Generator
}

// NewCardRenderer returns a renderer drawing with cfg's geometry and
// palette and fetching code images from codes.
func NewCardRenderer(cfg config.Config, codes scancode.Generator) *CardRenderer {
	return &CardRenderer{cfg: cfg, codes: codes}
}

// Render draws slot's record into slot.Box on page pos.Page of c.
//
// The code image is generated first; its failure fails the card with a
// *CodeError and leaves c untouched.
func (r *CardRenderer) Render(ctx context.Context, c Canvas, pos Position, slot model.CardSlot) error {
	rec := slot.Record
	code, err := r.codes.Generate(ctx, scancode.Payload(rec), r.cfg.Code.PixelWidth)
	if err != nil {
		return &CodeError{ID: rec.ID, Err: err}
	}

	c.SetPage(pos.Page)

	box := slot.Box
	card := r.cfg.Card
	pal := r.cfg.Palette

	// frames
	c.StrokeRect(box.Expand(card.InnerFrame.Offset), pal.Frame, card.InnerFrame.Weight)
	c.StrokeRect(box.Expand(card.OuterFrame.Offset), pal.Frame, card.OuterFrame.Weight)

	strip, panel := box.SplitX(card.StripRatio)
	c.FillRect(strip, pal.Strip)
	c.FillRect(panel, pal.Panel)
	c.StrokeRect(box, pal.Ink, card.BorderWeight)
	c.Line(model.Point{X: panel.X, Y: box.Top()}, model.Point{X: panel.X, Y: box.Bottom()}, pal.Ink, card.BorderWeight)

	if err := c.Image(codeImageName(slot), code, r.codeBox(box)); err != nil {
		return fmt.Errorf("embedding code for %s: %w", rec.ID, err)
	}

	r.drawStrip(c, box, rec)
	r.drawPanel(c, box, panel, rec)
	return nil
}

// codeBox returns the code image bounds in the card's bottom-right corner.
func (r *CardRenderer) codeBox(card model.BBox) model.BBox {
	size := r.cfg.Code.Size
	pad := r.cfg.Code.Padding
	return model.NewBBox(card.Right()-size-pad, card.Bottom()-size-pad, size, size)
}

func (r *CardRenderer) drawStrip(c Canvas, box model.BBox, rec model.StudentRecord) {
	card := r.cfg.Card
	c.Text(box.Origin().Offset(card.BatchX, card.BatchBaseline), r.cfg.Text.Batch(rec.Batch), TextOptions{
		Font:  r.font(r.cfg.Fonts.Label),
		Color: r.cfg.Palette.Ink,
		Angle: 90,
	})
	c.Text(box.Origin().Offset(card.IDX, card.IDBaseline), rec.ID, TextOptions{
		Font:  r.font(r.cfg.Fonts.ID),
		Color: r.cfg.Palette.Ink,
		Angle: 90,
	})
}

func (r *CardRenderer) drawPanel(c Canvas, box, panel model.BBox, rec model.StudentRecord) {
	card := r.cfg.Card
	x := panel.X + card.PanelPadding
	opts := TextOptions{Font: r.font(r.cfg.Fonts.Body), Color: r.cfg.Palette.Ink}

	y := box.Y + card.NameBaseline
	for _, line := range layout.WrapName(rec.Name, card.NameWrap) {
		c.Text(model.Point{X: x, Y: y}, line, opts)
		y += card.NameLineGap
	}

	c.Text(model.Point{X: x, Y: box.Y + card.QuotaBaseline}, rec.QuotaLine(), opts)
	c.Text(model.Point{X: x, Y: box.Y + card.CategoryBaseline}, rec.CategoryLine(), opts)
}

func (r *CardRenderer) font(size float64) Font {
	return Font{Family: r.cfg.Fonts.Family, Style: "B", Size: size}
}

func codeImageName(slot model.CardSlot) string {
	return fmt.Sprintf("code-%d-%d", slot.Page, slot.Index)
}
