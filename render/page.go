package render

import (
	"fmt"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/model"
)

// DrawWatermark draws the diagonal background text centred on the
// current page.
func DrawWatermark(c Canvas, cfg config.Config) {
	if cfg.Text.Watermark == "" {
		return
	}
	center := model.Point{X: cfg.Page.Width / 2, Y: cfg.Page.Height / 2}
	c.Text(center, cfg.Text.Watermark, TextOptions{
		Font:   Font{Family: cfg.Fonts.Family, Style: "B", Size: cfg.Fonts.Watermark},
		Color:  cfg.Palette.Watermark,
		Angle:  cfg.Text.WatermarkAngle,
		Center: true,
	})
}

// DrawHeader draws the title line at the top of the current page.
func DrawHeader(c Canvas, cfg config.Config) {
	if cfg.Text.Header == "" {
		return
	}
	c.Text(model.Point{X: cfg.Page.Width / 2, Y: cfg.Text.HeaderBaseline}, cfg.Text.Header, TextOptions{
		Font:   Font{Family: cfg.Fonts.Family, Style: "B", Size: cfg.Fonts.Header},
		Color:  cfg.Palette.Ink,
		Center: true,
	})
}

// FooterText formats the footer for page n of total.
func FooterText(cfg config.Config, n, total int) string {
	return fmt.Sprintf(cfg.Text.Footer, n, total)
}

// DrawFooter draws the page numbering line on page n of total.
func DrawFooter(c Canvas, cfg config.Config, n, total int) {
	c.SetPage(n)
	at := model.Point{
		X: cfg.Page.Width - cfg.Text.FooterInsetX,
		Y: cfg.Page.Height - cfg.Text.FooterInsetY,
	}
	c.Text(at, FooterText(cfg, n, total), TextOptions{
		Font:  Font{Family: cfg.Fonts.Family, Size: cfg.Fonts.Footer},
		Color: cfg.Palette.Ink,
	})
}
