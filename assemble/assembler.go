package assemble

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/layout"
	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/pages"
	"github.com/tsawler/cardsheet/render"
	"github.com/tsawler/cardsheet/scancode"
)

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithObserver registers an observer for state changes and timings.
func WithObserver(o Observer) Option {
	return func(a *Assembler) {
		if o != nil {
			a.observer = o
		}
	}
}

// WithSheet overrides the drawing surface created for each run. The
// default is a gofpdf-backed render.PDF.
func WithSheet(newSheet func(config.Config) render.Sheet) Option {
	return func(a *Assembler) {
		if newSheet != nil {
			a.newSheet = newSheet
		}
	}
}

// Assembler generates card sheets. It keeps no state between runs and may
// be reused, but a single run is never parallelized.
type Assembler struct {
	cfg      config.Config
	grid     *layout.Grid
	renderer *render.CardRenderer
	logger   *slog.Logger
	observer Observer
	newSheet func(config.Config) render.Sheet
}

// New validates cfg, builds its grid and returns an Assembler fetching
// code images from codes.
func New(cfg config.Config, codes scancode.Generator, opts ...Option) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	grid, err := layout.NewGrid(cfg)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator is required")
	}

	a := &Assembler{
		cfg:      cfg,
		grid:     grid,
		renderer: render.NewCardRenderer(cfg, codes),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
		newSheet: func(c config.Config) render.Sheet { return render.NewPDF(c) },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Grid returns the layout grid shared by every run.
func (a *Assembler) Grid() *layout.Grid {
	return a.grid
}

// Generate renders records, in order, into a finished document.
//
// ctx is passed to the code generator for each card; the assembler itself
// does not cancel or time out. On failure no document is returned.
func (a *Assembler) Generate(ctx context.Context, records []model.StudentRecord) (*model.Document, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	r := &run{Assembler: a, started: time.Now()}
	doc, err := r.exec(ctx, records)

	elapsed := time.Since(r.started)
	if err != nil {
		a.observer.Finished(r.cards, 0, elapsed, err)
		return nil, err
	}
	a.observer.Finished(doc.CardCount(), doc.PageCount(), elapsed, nil)
	a.logger.InfoContext(ctx, "generated card sheet",
		"cards", doc.CardCount(),
		"pages", doc.PageCount(),
		"bytes", doc.Len(),
		"duration", elapsed,
	)
	return doc, nil
}

// run holds the state of one Generate call
type run struct {
	*Assembler
	state   State
	sheet   render.Sheet
	cards   int
	started time.Time
}

func (r *run) enter(s State) {
	r.logger.Debug("state transition", "from", r.state, "to", s, "cards", r.cards)
	r.state = s
	r.observer.StateChanged(s)
}

func (r *run) exec(ctx context.Context, records []model.StudentRecord) (*model.Document, error) {
	layoutPages := pages.Allocate(records, r.grid)

	r.enter(Initializing)
	r.sheet = r.newSheet(r.cfg)
	r.sheet.AddPage()
	render.DrawWatermark(r.sheet, r.cfg)
	render.DrawHeader(r.sheet, r.cfg)

	capacity := r.grid.Capacity()
	for _, page := range layoutPages {
		if page.Index > 0 {
			r.enter(PageBoundary)
			r.sheet.AddPage()
			render.DrawWatermark(r.sheet, r.cfg)
		}

		pos := render.Position{Page: r.sheet.PageCount()}
		for _, slot := range page.Slots {
			r.enter(EmittingCard)
			start := time.Now()
			if err := r.renderer.Render(ctx, r.sheet, pos, slot); err != nil {
				return nil, r.fail(ctx, &GenerationError{
					Index: page.Index*capacity + slot.Index,
					ID:    slot.Record.ID,
					Err:   err,
				})
			}
			r.cards++
			r.observer.CardRendered(time.Since(start))
		}
	}

	r.enter(Finalizing)
	total := r.sheet.PageCount()
	for n := 1; n <= total; n++ {
		render.DrawFooter(r.sheet, r.cfg, n, total)
	}

	var buf bytes.Buffer
	if err := r.sheet.Output(&buf); err != nil {
		return nil, r.fail(ctx, fmt.Errorf("%w: serializing document: %w", ErrGenerationFailed, err))
	}
	r.sheet = nil

	r.enter(Complete)
	doc := model.NewDocument(r.cfg.Page.Width, r.cfg.Page.Height, layoutPages, buf.Bytes())
	doc.Metadata = model.Metadata{
		Title:        r.cfg.Document.Title,
		Author:       r.cfg.Document.Author,
		Creator:      r.cfg.Document.Creator,
		CreationDate: r.cfg.Document.CreatedAt,
	}
	if doc.Metadata.CreationDate.IsZero() {
		doc.Metadata.CreationDate = r.started
	}
	return doc, nil
}

// fail moves the run to Failed and drops the partial sheet.
func (r *run) fail(ctx context.Context, err error) error {
	r.enter(Failed)
	r.sheet = nil
	r.logger.ErrorContext(ctx, "card sheet generation failed",
		"error", err,
		"cards_rendered", r.cards,
	)
	return err
}
