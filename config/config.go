// Package config holds the style and geometry settings for card sheets.
//
// Nothing here is process-wide: a Config value is built once (usually from
// Default, optionally overlaid with a YAML file) and passed explicitly to
// the layout, render and assemble packages.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Color is an RGB color with 0-255 components.
type Color struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

// Page describes the sheet the cards are printed on.
type Page struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// Grid describes how cards are arranged on a page.
type Grid struct {
	Columns int     `yaml:"columns"`
	Rows    int     `yaml:"rows"`
	Spacing float64 `yaml:"spacing"`
}

// Capacity returns the number of cards per page.
func (g Grid) Capacity() int {
	return g.Columns * g.Rows
}

// Frame is one decorative border drawn around a card.
type Frame struct {
	Offset float64 `yaml:"offset"`
	Weight float64 `yaml:"weight"`
}

// Card describes the geometry inside a single card. Offsets are relative
// to the card's top-left corner.
type Card struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	StripRatio   float64 `yaml:"strip_ratio"`
	InnerFrame   Frame   `yaml:"inner_frame"`
	OuterFrame   Frame   `yaml:"outer_frame"`
	BorderWeight float64 `yaml:"border_weight"`

	// Left strip, rotated text. Baselines are measured from the card top.
	BatchX        float64 `yaml:"batch_x"`
	BatchBaseline float64 `yaml:"batch_baseline"`
	IDX           float64 `yaml:"id_x"`
	IDBaseline    float64 `yaml:"id_baseline"`

	// Right panel.
	PanelPadding     float64 `yaml:"panel_padding"`
	NameBaseline     float64 `yaml:"name_baseline"`
	NameWrap         int     `yaml:"name_wrap"`
	NameLineGap      float64 `yaml:"name_line_gap"`
	QuotaBaseline    float64 `yaml:"quota_baseline"`
	CategoryBaseline float64 `yaml:"category_baseline"`
}

// Palette holds the colors used on the sheet.
type Palette struct {
	Frame     Color `yaml:"frame"`
	Strip     Color `yaml:"strip"`
	Panel     Color `yaml:"panel"`
	Ink       Color `yaml:"ink"`
	Watermark Color `yaml:"watermark"`
}

// Fonts holds the font family and point sizes.
type Fonts struct {
	Family    string  `yaml:"family"`
	Label     float64 `yaml:"label"`
	ID        float64 `yaml:"id"`
	Body      float64 `yaml:"body"`
	Watermark float64 `yaml:"watermark"`
	Header    float64 `yaml:"header"`
	Footer    float64 `yaml:"footer"`
}

// Text holds the fixed strings printed on the sheet.
type Text struct {
	Watermark      string  `yaml:"watermark"`
	WatermarkAngle float64 `yaml:"watermark_angle"`
	Header         string  `yaml:"header"`
	HeaderBaseline float64 `yaml:"header_baseline"`
	// BatchLabel is printed on every card. Empty means use the record's Batch.
	BatchLabel string `yaml:"batch_label"`
	// Footer is a format string receiving the page number and page count.
	Footer       string  `yaml:"footer"`
	FooterInsetX float64 `yaml:"footer_inset_x"`
	FooterInsetY float64 `yaml:"footer_inset_y"`
}

// Batch returns the batch line printed for a record whose own batch is
// recordBatch.
func (t Text) Batch(recordBatch string) string {
	if t.BatchLabel != "" {
		return t.BatchLabel
	}
	return recordBatch
}

// Code describes the scannable code embedded in each card.
type Code struct {
	Size       float64 `yaml:"size"`
	Padding    float64 `yaml:"padding"`
	PixelWidth int     `yaml:"pixel_width"`
}

// Document holds output metadata.
type Document struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Creator string `yaml:"creator"`
	// CreatedAt pins the creation timestamp. Zero means the time of generation.
	CreatedAt time.Time `yaml:"created_at"`
}

// Config is the complete set of sheet settings.
type Config struct {
	Page     Page     `yaml:"page"`
	Grid     Grid     `yaml:"grid"`
	Card     Card     `yaml:"card"`
	Palette  Palette  `yaml:"palette"`
	Fonts    Fonts    `yaml:"fonts"`
	Text     Text     `yaml:"text"`
	Code     Code     `yaml:"code"`
	Document Document `yaml:"document"`
}

// Default returns the canonical A4 portrait layout: 15mm margin, 85x30mm
// cards, 8mm spacing, two columns of five rows.
func Default() Config {
	return Config{
		Page: Page{Width: 210, Height: 297, Margin: 15},
		Grid: Grid{Columns: 2, Rows: 5, Spacing: 8},
		Card: Card{
			Width:        85,
			Height:       30,
			StripRatio:   0.38,
			InnerFrame:   Frame{Offset: 1, Weight: 0.8},
			OuterFrame:   Frame{Offset: 2, Weight: 0.3},
			BorderWeight: 0.5,

			BatchX:        8,
			BatchBaseline: 26,
			IDX:           18,
			IDBaseline:    25,

			PanelPadding:     5,
			NameBaseline:     10,
			NameWrap:         16,
			NameLineGap:      4.2,
			QuotaBaseline:    19,
			CategoryBaseline: 25,
		},
		Palette: Palette{
			Frame:     Color{0, 71, 171},
			Strip:     Color{255, 192, 203},
			Panel:     Color{240, 255, 240},
			Ink:       Color{0, 0, 0},
			Watermark: Color{200, 200, 200},
		},
		Fonts: Fonts{
			Family:    "helvetica",
			Label:     12,
			ID:        17,
			Body:      12,
			Watermark: 30,
			Header:    16,
			Footer:    10,
		},
		Text: Text{
			Watermark:      "KPRIET STUDENT CARD",
			WatermarkAngle: 45,
			Header:         "KPRIET Student Identity Cards 2028",
			HeaderBaseline: 10,
			BatchLabel:     "2024 - 2028",
			Footer:         "Page %d of %d",
			FooterInsetX:   20,
			FooterInsetY:   10,
		},
		Code: Code{Size: 10, Padding: 2, PixelWidth: 15},
		Document: Document{
			Title:   "Student Identity Cards",
			Creator: "cardsheet",
		},
	}
}

// Validate checks that every size is usable. It does not check that the
// grid fits the page; layout.NewGrid does that.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("page.width", c.Page.Width)
	positive("page.height", c.Page.Height)
	positive("card.width", c.Card.Width)
	positive("card.height", c.Card.Height)
	positive("code.size", c.Code.Size)
	positive("fonts.label", c.Fonts.Label)
	positive("fonts.id", c.Fonts.ID)
	positive("fonts.body", c.Fonts.Body)

	if c.Page.Margin < 0 {
		errs = append(errs, fmt.Errorf("page.margin must not be negative, got %v", c.Page.Margin))
	}
	if c.Grid.Spacing < 0 {
		errs = append(errs, fmt.Errorf("grid.spacing must not be negative, got %v", c.Grid.Spacing))
	}
	if c.Grid.Columns < 1 || c.Grid.Rows < 1 {
		errs = append(errs, fmt.Errorf("grid must have at least one column and row, got %dx%d", c.Grid.Columns, c.Grid.Rows))
	}
	if c.Card.StripRatio <= 0 || c.Card.StripRatio >= 1 {
		errs = append(errs, fmt.Errorf("card.strip_ratio must be in (0, 1), got %v", c.Card.StripRatio))
	}
	if c.Card.NameWrap < 1 {
		errs = append(errs, fmt.Errorf("card.name_wrap must be at least 1, got %d", c.Card.NameWrap))
	}
	if c.Code.PixelWidth < 1 {
		errs = append(errs, fmt.Errorf("code.pixel_width must be at least 1, got %d", c.Code.PixelWidth))
	}
	if c.Fonts.Family == "" {
		errs = append(errs, errors.New("fonts.family must be set"))
	}
	if out := fmt.Sprintf(c.Text.Footer, 1, 2); strings.Contains(out, "%!") {
		errs = append(errs, fmt.Errorf("text.footer %q must format a page number and page count with two integer verbs", c.Text.Footer))
	}

	return errors.Join(errs...)
}
