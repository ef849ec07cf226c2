package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/cardsheet/assemble"
	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/layout"
	"github.com/tsawler/cardsheet/metrics"
	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/scancode"
	"github.com/tsawler/cardsheet/xlsx"
)

const rosterCSV = `AD NO,Student Name,Batch,Quota,Dept,COMM,TYPE
24CS001,Asha Kumar,2024,GQ,CSE,BC,DS
24EC002,Ravi Shankar,2024,MQ,ECE,MBC,
24CS003,Meena,2024,MQ,CSE,OC,
`

type testServer struct {
	router  http.Handler
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, gen Generator) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.Document.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if gen == nil {
		asm, err := assemble.New(cfg, scancode.NewQR(), assemble.WithObserver(m), assemble.WithLogger(logger))
		require.NoError(t, err)
		gen = asm
	}
	h := NewHandler(gen, layout.MustGrid(cfg), cfg.Text, logger, m)
	return &testServer{router: NewRouter(h, reg, logger), metrics: m}
}

// upload builds a multipart request carrying a roster file and form fields.
func upload(t *testing.T, path, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("roster", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// zipParts builds an in-memory zip archive from name/body pairs.
func zipParts(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCardsDownload(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(upload(t, "/cards", "students.csv", []byte(rosterCSV), nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="student-cards.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
	assert.Equal(t, fmt.Sprint(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.metrics.Cards))
}

func TestCardsFromWorkbook(t *testing.T) {
	var book bytes.Buffer
	require.NoError(t, xlsx.Write(&book, "Students", [][]string{
		{"AD NO", "Student Name", "Batch", "Quota", "Dept", "COMM"},
		{"24CS001", "Asha Kumar", "2024", "GQ", "CSE", "BC"},
	}))

	s := newTestServer(t, nil)
	rec := s.do(upload(t, "/cards", "students.xlsx", book.Bytes(), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

// captureGen records the records it was asked to generate.
type captureGen struct {
	got []model.StudentRecord
	err error
}

func (g *captureGen) Generate(ctx context.Context, records []model.StudentRecord) (*model.Document, error) {
	g.got = records
	if g.err != nil {
		return nil, g.err
	}
	return model.NewDocument(210, 297, nil, []byte("%PDF-1.3 stub")), nil
}

func TestCardsFilters(t *testing.T) {
	gen := &captureGen{}
	s := newTestServer(t, gen)
	rec := s.do(upload(t, "/cards", "students.csv", []byte(rosterCSV), map[string]string{"dept": "cse", "q": "meena"}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gen.got, 1)
	assert.Equal(t, "24CS003", gen.got[0].ID)
}

func TestCardsErrors(t *testing.T) {
	longName := strings.Repeat("x", 51)
	tests := []struct {
		name     string
		filename string
		data     string
		fields   map[string]string
		gen      *captureGen
		status   int
		code     string
	}{
		{"missing file", "", "", nil, nil, http.StatusBadRequest, "missing_file"},
		{"legacy xls", "old.xls", "\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1", nil, nil, http.StatusUnsupportedMediaType, "unsupported_format"},
		{"corrupt workbook", "s.xlsx", "PK\x03\x04 truncated archive", nil, nil, http.StatusUnprocessableEntity, "unreadable"},
		{"workbook without sheets", "s.xlsx", string(zipParts(t, map[string]string{
			"[Content_Types].xml": `<Types/>`,
			"xl/workbook.xml":     `<workbook><sheets/></workbook>`,
		})), nil, nil, http.StatusUnprocessableEntity, "unreadable"},
		{"malformed csv", "s.csv", "AD NO,Student Name\n1,\"unterminated\n", nil, nil, http.StatusUnprocessableEntity, "unreadable"},
		{"missing column", "s.csv", "AD NO,Student Name\n1,A\n", nil, nil, http.StatusUnprocessableEntity, "missing_column"},
		{"invalid roster", "s.csv", "AD NO,Student Name,Batch,Quota,Dept,COMM\n1," + longName + ",2024,GQ,CSE,BC\n", nil, nil, http.StatusUnprocessableEntity, "invalid_roster"},
		{"nothing matches", "s.csv", rosterCSV, map[string]string{"q": "nobody"}, nil, http.StatusUnprocessableEntity, "no_records"},
		{"generator failure", "s.csv", rosterCSV, nil, &captureGen{err: &assemble.GenerationError{Index: 0, ID: "24CS001", Err: errors.New("down")}}, http.StatusBadGateway, "generation_failed"},
		{"unexpected failure", "s.csv", rosterCSV, nil, &captureGen{err: errors.New("disk full")}, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gen Generator
			if tt.gen != nil {
				gen = tt.gen
			}
			s := newTestServer(t, gen)
			rec := s.do(upload(t, "/cards", tt.filename, []byte(tt.data), tt.fields))

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Error)
			if tt.status == http.StatusInternalServerError {
				assert.Empty(t, resp.Description, "internal errors must not leak details")
			}
			if tt.code == "unreadable" {
				assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.RosterErrors.WithLabelValues("unreadable")))
			}
			if tt.code == "invalid_roster" {
				require.Len(t, resp.Problems, 1)
				assert.Contains(t, resp.Problems[0], "Student Name")
			}
		})
	}
}

func TestCardsNotMultipart(t *testing.T) {
	s := newTestServer(t, &captureGen{})
	req := httptest.NewRequest(http.MethodPost, "/cards", strings.NewReader(rosterCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := s.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_form", decodeError(t, rec).Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.RosterErrors.WithLabelValues("bad_form")))
}

func TestPreview(t *testing.T) {
	s := newTestServer(t, &captureGen{})

	rec := s.do(upload(t, "/preview", "s.csv", []byte(rosterCSV), map[string]string{"dept": "CSE"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Preview: Showing 2 cards across 1 pages")
	assert.Contains(t, rec.Body.String(), `<div class="batch">2024 - 2028</div>`, "preview batch line matches the printed label")

	rec = s.do(upload(t, "/preview", "s.csv", []byte(rosterCSV), map[string]string{"q": "zzz"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No matching cards found")
}

func TestStats(t *testing.T) {
	s := newTestServer(t, &captureGen{})
	rec := s.do(upload(t, "/stats", "s.csv", []byte(rosterCSV), map[string]string{"dept": "CSE"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total       int `json:"total"`
		Pages       int `json:"pages"`
		Departments []struct {
			Value string `json:"value"`
			Count int    `json:"count"`
		} `json:"departments"`
		DepartmentNames []string `json:"department_names"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Pages)
	require.Len(t, resp.Departments, 1)
	assert.Equal(t, "CSE", resp.Departments[0].Value)
	assert.Equal(t, []string{"CSE", "ECE"}, resp.DepartmentNames)
}

func TestTemplate(t *testing.T) {
	s := newTestServer(t, &captureGen{})
	rec := s.do(httptest.NewRequest(http.MethodGet, "/template", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	book, err := xlsx.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	values := book.Sheets[0].Values()
	require.Len(t, values, 1)
	assert.Equal(t, "AD NO", values[0][0])
}
