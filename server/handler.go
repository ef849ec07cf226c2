package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/pages"
	"github.com/tsawler/cardsheet/preview"
	"github.com/tsawler/cardsheet/roster"
	"github.com/tsawler/cardsheet/stats"
	"github.com/tsawler/cardsheet/xlsx"
)

// DownloadName is the filename offered for generated documents.
const DownloadName = "student-cards.pdf"

// MaxUploadSize bounds accepted roster uploads.
const MaxUploadSize = 10 << 20

// Generator produces card documents. *assemble.Assembler satisfies it.
type Generator interface {
	Generate(ctx context.Context, records []model.StudentRecord) (*model.Document, error)
}

// RosterMetrics records rejected uploads. *metrics.Metrics satisfies it.
type RosterMetrics interface {
	IncrementRosterError(reason string)
}

// Handler serves the roster endpoints.
type Handler struct {
	gen     Generator
	grid    pages.Slotter
	text    config.Text
	logger  *slog.Logger
	metrics RosterMetrics
}

// NewHandler builds a Handler. grid paginates previews and statistics and
// text labels preview cards; both must match what gen prints with.
// logger and m may be nil.
func NewHandler(gen Generator, grid pages.Slotter, text config.Text, logger *slog.Logger, m RosterMetrics) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{gen: gen, grid: grid, text: text, logger: logger, metrics: m}
}

// Register mounts the roster endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/template", h.HandleTemplate)
	r.Post("/cards", h.HandleCards)
	r.Post("/preview", h.HandlePreview)
	r.Post("/stats", h.HandleStats)
}

// HandleCards handles POST /cards.
func (h *Handler) HandleCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, ok := h.records(w, r, true)
	if !ok {
		return
	}

	doc, err := h.gen.Generate(ctx, records)
	if err != nil {
		h.logger.ErrorContext(ctx, "card generation failed",
			"request_id", RequestIDFrom(ctx),
			"records", len(records),
			"error", err,
		)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadName))
	w.Header().Set("Content-Length", strconv.Itoa(doc.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := doc.WriteTo(w); err != nil {
		h.logger.WarnContext(ctx, "writing document", "request_id", RequestIDFrom(ctx), "error", err)
	}
}

// HandlePreview handles POST /preview.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	records, ok := h.records(w, r, false)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := preview.Render(&buf, records, h.grid, h.text); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// statsResponse is the body of POST /stats.
type statsResponse struct {
	stats.Summary
	DepartmentNames []string `json:"department_names"`
}

// HandleStats handles POST /stats. Filters apply to the counts but the
// department list always covers the whole roster.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	all, ok := h.upload(w, r)
	if !ok {
		return
	}
	records := roster.Filter(all, r.FormValue("q"), r.FormValue("dept"))
	writeJSON(w, http.StatusOK, statsResponse{
		Summary:         stats.Compute(records).WithPages(h.grid.Capacity()),
		DepartmentNames: roster.Departments(all),
	})
}

// HandleTemplate handles GET /template.
func (h *Handler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, "Students", [][]string{roster.Headers()}); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="roster-template.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// records parses the upload and applies the q and dept filters. With
// validate set, filtered records must pass roster.Validate.
func (h *Handler) records(w http.ResponseWriter, r *http.Request, validate bool) ([]model.StudentRecord, bool) {
	all, ok := h.upload(w, r)
	if !ok {
		return nil, false
	}
	records := roster.Filter(all, r.FormValue("q"), r.FormValue("dept"))
	if validate {
		if err := roster.Validate(records); err != nil {
			h.reject(w, r, "invalid", err)
			return nil, false
		}
	}
	return records, true
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) ([]model.StudentRecord, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(w, r, "too_large", &apiError{status: http.StatusRequestEntityTooLarge, code: "too_large", err: err})
			return nil, false
		}
		h.reject(w, r, "bad_form", badRequest("bad_form", err))
		return nil, false
	}

	file, header, err := r.FormFile("roster")
	if err != nil {
		h.reject(w, r, "missing_file", badRequest("missing_file", fmt.Errorf("roster file is required: %w", err)))
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.reject(w, r, "bad_form", badRequest("bad_form", err))
		return nil, false
	}
	records, err := roster.Decode(header.Filename, data)
	if err != nil {
		h.reject(w, r, "unreadable", err)
		return nil, false
	}
	return records, true
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	if h.metrics != nil {
		h.metrics.IncrementRosterError(reason)
	}
	h.logger.WarnContext(r.Context(), "roster rejected",
		"request_id", RequestIDFrom(r.Context()),
		"reason", reason,
		"error", err,
	)
	writeError(w, err)
}
