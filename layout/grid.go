package layout

import (
	"errors"
	"fmt"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/model"
)

// ErrGeometry is returned when the configured cards do not fit the page.
var ErrGeometry = errors.New("layout: grid does not fit page")

// epsilon absorbs float rounding in bound checks
const epsilon = 1e-9

// Grid computes card positions for a fixed page geometry.
// A Grid is immutable and safe to share.
type Grid struct {
	page    config.Page
	cols    int
	rows    int
	spacing float64
	cardW   float64
	cardH   float64
}

// NewGrid builds a Grid from cfg and verifies that every slot, including
// the last column and row, stays inside the page margins.
func NewGrid(cfg config.Config) (*Grid, error) {
	g := &Grid{
		page:    cfg.Page,
		cols:    cfg.Grid.Columns,
		rows:    cfg.Grid.Rows,
		spacing: cfg.Grid.Spacing,
		cardW:   cfg.Card.Width,
		cardH:   cfg.Card.Height,
	}

	if g.cols < 1 || g.rows < 1 {
		return nil, fmt.Errorf("%w: need at least one column and row, got %dx%d", ErrGeometry, g.cols, g.rows)
	}
	if g.cardW <= 0 || g.cardH <= 0 {
		return nil, fmt.Errorf("%w: card size %vx%v", ErrGeometry, g.cardW, g.cardH)
	}

	last := g.Slot(g.Capacity() - 1)
	if last.Right()+g.page.Margin > g.page.Width+epsilon {
		return nil, fmt.Errorf("%w: %d columns need width %.2f, page is %.2f",
			ErrGeometry, g.cols, last.Right()+g.page.Margin, g.page.Width)
	}
	if last.Bottom()+g.page.Margin > g.page.Height+epsilon {
		return nil, fmt.Errorf("%w: %d rows need height %.2f, page is %.2f",
			ErrGeometry, g.rows, last.Bottom()+g.page.Margin, g.page.Height)
	}

	return g, nil
}

// MustGrid is like NewGrid but panics on error. It is intended for
// configurations known to be valid, such as config.Default.
func MustGrid(cfg config.Config) *Grid {
	g, err := NewGrid(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

// Capacity returns the number of cards per page.
func (g *Grid) Capacity() int {
	return g.cols * g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Position returns the row and column of slot index i. Indices beyond the
// page capacity wrap, so a record's global index may be passed directly.
func (g *Grid) Position(i int) (row, col int) {
	pos := i % g.Capacity()
	return pos / g.cols, pos % g.cols
}

// Origin returns the top-left corner of slot i.
func (g *Grid) Origin(i int) model.Point {
	row, col := g.Position(i)
	return model.Point{
		X: g.page.Margin + float64(col)*(g.cardW+g.spacing),
		Y: g.page.Margin + float64(row)*(g.cardH+g.spacing),
	}
}

// Slot returns the card bounds of slot i.
func (g *Grid) Slot(i int) model.BBox {
	o := g.Origin(i)
	return model.NewBBox(o.X, o.Y, g.cardW, g.cardH)
}

// Page returns the page bounds.
func (g *Grid) Page() model.BBox {
	return model.NewBBox(0, 0, g.page.Width, g.page.Height)
}

// Content returns the page bounds minus the margin.
func (g *Grid) Content() model.BBox {
	return g.Page().Inset(g.page.Margin)
}

// MaxRows returns the largest number of rows that fit cfg's page with its
// card height, spacing and margin.
func MaxRows(cfg config.Config) int {
	usable := cfg.Page.Height - 2*cfg.Page.Margin + cfg.Grid.Spacing
	step := cfg.Card.Height + cfg.Grid.Spacing
	if step <= 0 || usable < step {
		return 0
	}
	return int((usable + epsilon) / step)
}
