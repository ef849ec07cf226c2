package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tsawler/cardsheet/assemble"
	"github.com/tsawler/cardsheet/format"
	"github.com/tsawler/cardsheet/roster"
	"github.com/tsawler/cardsheet/xlsx"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error       string   `json:"error"`
	Description string   `json:"error_description,omitempty"`
	Problems    []string `json:"problems,omitempty"`
}

// apiError pairs a status and code with the underlying failure.
type apiError struct {
	status int
	code   string
	err    error
}

func (e *apiError) Error() string { return e.err.Error() }
func (e *apiError) Unwrap() error { return e.err }

func badRequest(code string, err error) error {
	return &apiError{status: http.StatusBadRequest, code: code, err: err}
}

// classify maps an error to its HTTP status and error code.
func classify(err error) (int, string) {
	var apiErr *apiError
	var verr *roster.ValidationError
	var csvErr *csv.ParseError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.status, apiErr.code
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "invalid_roster"
	case errors.Is(err, roster.ErrMissingColumn):
		return http.StatusUnprocessableEntity, "missing_column"
	case errors.Is(err, xlsx.ErrNotWorkbook), errors.Is(err, xlsx.ErrNoSheets), errors.As(err, &csvErr):
		return http.StatusUnprocessableEntity, "unreadable"
	case errors.Is(err, format.ErrUnsupported):
		return http.StatusUnsupportedMediaType, "unsupported_format"
	case errors.Is(err, assemble.ErrNoRecords):
		return http.StatusUnprocessableEntity, "no_records"
	case errors.Is(err, assemble.ErrGenerationFailed):
		return http.StatusBadGateway, "generation_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError writes err as JSON. Internal errors omit the description.
func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	resp := errorResponse{Error: code}
	if status != http.StatusInternalServerError {
		resp.Description = err.Error()
	}
	var verr *roster.ValidationError
	if errors.As(err, &verr) {
		resp.Description = "roster failed validation"
		for _, p := range verr.Problems {
			resp.Problems = append(resp.Problems, p.String())
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
