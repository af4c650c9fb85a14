package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/user/parcel-service/internal/delivery/http/handler"
	"github.com/user/parcel-service/internal/delivery/http/router"
	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/pkg/logger"
	"github.com/user/parcel-service/pkg/metrics"
)

func TestMain(m *testing.M) {
	logger.Init(io.Discard, slog.LevelError)
	metrics.Init()
	os.Exit(m.Run())
}

type fakeParcelLookup struct {
	err error
}

func (f *fakeParcelLookup) GetParcel(ctx context.Context, ain string) (*entity.ParcelSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.ParcelSummary{AIN: ain, UseType: "Single Family Residence"}, nil
}

type fakeZoningLookup struct {
	err error
}

func (f *fakeZoningLookup) GetZoning(ctx context.Context, ain string) (*entity.ZoningSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.ZoningSummary{AIN: ain, AssessorZoningPDB: "LCR175"}, nil
}

type fakeComboLookup struct {
	err error
}

func (f *fakeComboLookup) GetCombined(ctx context.Context, ain string) (*entity.CombinedResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.CombinedResult{
		AIN:    ain,
		Parcel: &entity.ParcelSummary{AIN: ain},
		Zoning: &entity.ZoningSummary{AIN: ain},
	}, nil
}

func (f *fakeComboLookup) GetCombinedBatch(ctx context.Context, ains []string) []entity.BatchItem {
	items := make([]entity.BatchItem, len(ains))
	for i, ain := range ains {
		items[i] = entity.BatchItem{AIN: ain}
		if f.err != nil {
			items[i].Error = f.err.Error()
		} else {
			items[i].Parcel = &entity.ParcelSummary{AIN: ain}
		}
	}
	return items
}

func newServer(parcelErr, zoningErr, comboErr error) http.Handler {
	h := handler.NewHandler(
		&fakeParcelLookup{err: parcelErr},
		&fakeZoningLookup{err: zoningErr},
		&fakeComboLookup{err: comboErr},
	)
	return router.New(h)
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := do(t, newServer(nil, nil, nil), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestGetParcelSuccess(t *testing.T) {
	rec := do(t, newServer(nil, nil, nil), http.MethodGet, "/api/parcel/5846022043", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["ain"] != "5846022043" {
		t.Errorf("ain = %v", body["ain"])
	}
}

func TestDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "unknown parcel maps to 404",
			err:        fmt.Errorf("parcel 000: %w", repository.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing coordinates maps to 400",
			err:        fmt.Errorf("parcel 000: %w", repository.ErrMissingCoordinates),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "upstream failure maps to 502",
			err:        &repository.UpstreamError{Service: "assessor", StatusCode: 503, Err: fmt.Errorf("unavailable")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unclassified error maps to 500",
			err:        fmt.Errorf("unexpected"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(tt.err, tt.err, tt.err)
			for _, path := range []string{"/api/parcel/000", "/api/zoning/000", "/api/combo/000"} {
				rec := do(t, srv, http.MethodGet, path, "")
				if rec.Code != tt.wantStatus {
					t.Errorf("%s: status = %d, want %d", path, rec.Code, tt.wantStatus)
				}
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("%s: non-JSON error body: %v", path, err)
				}
				if body["error"] == "" {
					t.Errorf("%s: error body missing message", path)
				}
			}
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	rec := do(t, newServer(fmt.Errorf("pg: secret dsn"), nil, nil), http.MethodGet, "/api/parcel/1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Errorf("internal detail leaked to client: %s", rec.Body.String())
	}
}

func TestBatchCombined(t *testing.T) {
	srv := newServer(nil, nil, nil)

	rec := do(t, srv, http.MethodPost, "/api/combo/batch", `{"ains": ["A", "B"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Results []entity.BatchItem `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Results) != 2 || body.Results[0].AIN != "A" || body.Results[1].AIN != "B" {
		t.Errorf("results = %+v", body.Results)
	}
}

func TestBatchCombinedRejectsBadInput(t *testing.T) {
	srv := newServer(nil, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"ains": [`},
		{"empty list", `{"ains": []}`},
		{"missing field", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/combo/batch", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv := newServer(nil, nil, nil)
	if rec := do(t, srv, http.MethodGet, "/api/nothing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route: status = %d, want 404", rec.Code)
	}
	if rec := do(t, srv, http.MethodDelete, "/api/parcel/1", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong method: status = %d, want 405", rec.Code)
	}
}
