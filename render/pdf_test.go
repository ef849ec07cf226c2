package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/scancode"
)

func TestPDFSheet(t *testing.T) {
	cfg := config.Default()
	cfg.Document.CreatedAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	sheet := NewPDF(cfg)
	sheet.AddPage()
	DrawWatermark(sheet, cfg)
	DrawHeader(sheet, cfg)

	r := NewCardRenderer(cfg, scancode.NewQR())
	if err := r.Render(context.Background(), sheet, Position{Page: 1}, testSlot("Zoë Ångström", "DS")); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	sheet.AddPage()
	DrawWatermark(sheet, cfg)
	for n := 1; n <= sheet.PageCount(); n++ {
		DrawFooter(sheet, cfg, n, sheet.PageCount())
	}

	if sheet.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", sheet.PageCount())
	}

	var buf bytes.Buffer
	if err := sheet.Output(&buf); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", out[:min(len(out), 16)])
	}
	if got := strings.Count(out, "/Type /Page\n"); got != 2 {
		t.Errorf("found %d page objects, want 2", got)
	}
}

