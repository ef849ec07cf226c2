package cardsheet

import (
	"log/slog"

	"github.com/tsawler/cardsheet/assemble"
	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/scancode"
)

// Options holds the configuration of a Sheet. It is a plain value, so
// copying it is enough to keep Sheets independent.
type Options struct {
	cfg      config.Config
	capacity int // cards per page; 0 keeps cfg.Grid.Rows

	// Record selection
	query string
	dept  string

	// Processing
	skipValidation bool
	codes          scancode.Generator // nil means scancode.NewQR()
	logger         *slog.Logger
	observer       assemble.Observer
}

// defaultOptions returns the canonical layout with validation enabled.
func defaultOptions() Options {
	return Options{
		cfg: config.Default(),
	}
}
