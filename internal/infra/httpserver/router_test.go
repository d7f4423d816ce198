package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appanalyses "github.com/jebnlang/video-analyzer/internal/application/analyses"
	"github.com/jebnlang/video-analyzer/internal/domain/analysis"
	domreports "github.com/jebnlang/video-analyzer/internal/domain/reports"
	"github.com/jebnlang/video-analyzer/internal/middleware"
)

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

type stubRepo struct{}

func (stubRepo) Save(context.Context, *domreports.Report) error { return nil }
func (stubRepo) Get(context.Context, string, domreports.ReportID) (*domreports.Report, error) {
	return nil, sql.ErrNoRows
}
func (stubRepo) Latest(context.Context, string, int) ([]*domreports.Report, error) {
	return nil, nil
}
func (stubRepo) Paginate(context.Context, string, int, int) ([]*domreports.Report, error) {
	return nil, nil
}
func (stubRepo) Count(context.Context, string) (int64, error) { return 0, nil }
func (stubRepo) Summary(context.Context, string, int) (int, float64, error) {
	return 0, 0, nil
}

type stubStore struct{}

func (stubStore) UploadAndCleanup(_ context.Context, _, key string) (string, error) {
	return "http://store.local/" + key, nil
}

func (stubStore) PresignedPut(_ context.Context, key string, _ time.Duration) (string, error) {
	return "http://store.local/presigned/" + key, nil
}

func newTestRouter(checkers map[string]middleware.HealthChecker) http.Handler {
	svc := &appanalyses.Service{
		Reports:  stubRepo{},
		Videos:   stubStore{},
		Pipeline: analysis.NewPipeline(),
		Clock:    stubClock{},
	}
	return NewRouter(svc, nil, 100, checkers)
}

func analysesTotal(t *testing.T) uint64 {
	t.Helper()
	v, ok := middleware.GetMetrics()["analyses_total"].(uint64)
	if !ok {
		t.Fatal("analyses_total missing from metrics")
	}
	return v
}

func TestAnalyzeTextCountedInMetrics(t *testing.T) {
	router := newTestRouter(nil)
	before := analysesTotal(t)

	body, _ := json.Marshal(map[string]any{"analysis": "Clarity (7/10)"})
	req := httptest.NewRequest(http.MethodPost, "/v1/acme/text/analyze", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if after := analysesTotal(t); after != before+1 {
		t.Errorf("analyses_total = %d, want %d", after, before+1)
	}
}

func TestHealthRouteRunsCheckers(t *testing.T) {
	router := newTestRouter(map[string]middleware.HealthChecker{
		"database": middleware.CheckerFunc(func(ctx context.Context) error { return nil }),
		"storage":  middleware.CheckerFunc(func(ctx context.Context) error { return errors.New("unreachable") }),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when a checker fails", w.Code)
	}
	var status middleware.HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if status.Checks["storage"].Message != "unreachable" {
		t.Errorf("storage check = %+v, want the checker error surfaced", status.Checks["storage"])
	}
}
