package cardsheet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/cardsheet/assemble"
	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/layout"
	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/pages"
	"github.com/tsawler/cardsheet/preview"
	"github.com/tsawler/cardsheet/roster"
	"github.com/tsawler/cardsheet/scancode"
	"github.com/tsawler/cardsheet/stats"
)

// Sheet is a fluent description of a card sheet. Each configuration method
// returns a new Sheet, so a partially configured Sheet may be shared and
// extended safely.
type Sheet struct {
	// Source
	path    string
	records []model.StudentRecord
	loaded  bool

	options Options

	// Accumulated error (fail-fast)
	err error
}

// clone copies the Sheet. Records are never mutated after loading, so the
// slice is shared.
func (s *Sheet) clone() *Sheet {
	c := *s
	return &c
}

func (s *Sheet) with(fn func(*Sheet)) *Sheet {
	c := s.clone()
	if c.err == nil {
		fn(c)
	}
	return c
}

// Config replaces the layout and style configuration. A capacity set with
// Capacity is kept and applied on top of cfg whatever the call order.
func (s *Sheet) Config(cfg config.Config) *Sheet {
	return s.with(func(c *Sheet) { c.options.cfg = cfg })
}

// Capacity sets the number of cards per page. The row count is derived
// from it when the sheet is laid out, so n must be a multiple of the
// column count of the final configuration.
func (s *Sheet) Capacity(n int) *Sheet {
	return s.with(func(c *Sheet) {
		if n < 1 {
			c.err = fmt.Errorf("%w: capacity %d is not positive", layout.ErrGeometry, n)
			return
		}
		c.options.capacity = n
	})
}

// Search keeps only records with a field containing query, ignoring case.
func (s *Sheet) Search(query string) *Sheet {
	return s.with(func(c *Sheet) { c.options.query = query })
}

// Department keeps only records of the named department.
func (s *Sheet) Department(dept string) *Sheet {
	return s.with(func(c *Sheet) { c.options.dept = dept })
}

// SkipValidation hands records to the generator without checking required
// fields and name lengths.
func (s *Sheet) SkipValidation() *Sheet {
	return s.with(func(c *Sheet) { c.options.skipValidation = true })
}

// CodeGenerator replaces the QR code generator.
func (s *Sheet) CodeGenerator(g scancode.Generator) *Sheet {
	return s.with(func(c *Sheet) { c.options.codes = g })
}

// Logger sets the logger used during generation.
func (s *Sheet) Logger(l *slog.Logger) *Sheet {
	return s.with(func(c *Sheet) { c.options.logger = l })
}

// Observer registers an observer of generation progress.
func (s *Sheet) Observer(o assemble.Observer) *Sheet {
	return s.with(func(c *Sheet) { c.options.observer = o })
}

// Records returns the selected records, in roster order.
func (s *Sheet) Records() ([]model.StudentRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	all := s.records
	if !s.loaded {
		if s.path == "" {
			return nil, fmt.Errorf("no roster specified")
		}
		var err error
		all, err = roster.Read(s.path)
		if err != nil {
			return nil, fmt.Errorf("reading roster %s: %w", s.path, err)
		}
	}
	return roster.Filter(all, s.options.query, s.options.dept), nil
}

// PageCount returns the number of pages the selected records fill.
func (s *Sheet) PageCount() (int, error) {
	grid, err := s.grid()
	if err != nil {
		return 0, err
	}
	records, err := s.Records()
	if err != nil {
		return 0, err
	}
	return pages.Count(len(records), grid.Capacity()), nil
}

// Stats summarizes the selected records.
func (s *Sheet) Stats() (stats.Summary, error) {
	grid, err := s.grid()
	if err != nil {
		return stats.Summary{}, err
	}
	records, err := s.Records()
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Compute(records).WithPages(grid.Capacity()), nil
}

// Preview writes the HTML preview of the selected records to w.
func (s *Sheet) Preview(w io.Writer) error {
	grid, err := s.grid()
	if err != nil {
		return err
	}
	records, err := s.Records()
	if err != nil {
		return err
	}
	return preview.Render(w, records, grid, s.options.cfg.Text)
}

// Generate renders the selected records into a PDF document.
func (s *Sheet) Generate(ctx context.Context) (*model.Document, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	if !s.options.skipValidation {
		if err := roster.Validate(records); err != nil {
			return nil, err
		}
	}

	codes := s.options.codes
	if codes == nil {
		codes = scancode.NewQR()
	}
	asm, err := assemble.New(cfg, codes,
		assemble.WithLogger(s.options.logger),
		assemble.WithObserver(s.options.observer),
	)
	if err != nil {
		return nil, err
	}
	return asm.Generate(ctx, records)
}

// Save generates the document and writes it to path. An empty path
// writes DefaultFilename in the working directory.
func (s *Sheet) Save(ctx context.Context, path string) error {
	doc, err := s.Generate(ctx)
	if err != nil {
		return err
	}
	if path == "" {
		path = DefaultFilename
	}
	return os.WriteFile(path, doc.Bytes(), 0o644)
}

// config returns the configuration with any Capacity override applied.
func (s *Sheet) config() (config.Config, error) {
	if s.err != nil {
		return config.Config{}, s.err
	}
	cfg := s.options.cfg
	if n := s.options.capacity; n > 0 {
		cols := cfg.Grid.Columns
		if cols < 1 || n%cols != 0 {
			return config.Config{}, fmt.Errorf("%w: capacity %d is not a multiple of %d columns", layout.ErrGeometry, n, cols)
		}
		cfg.Grid.Rows = n / cols
	}
	return cfg, nil
}

func (s *Sheet) grid() (*layout.Grid, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	return layout.NewGrid(cfg)
}
