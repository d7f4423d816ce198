package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_AllHealthy(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"database": CheckerFunc(func(ctx context.Context) error { return nil }),
		"storage":  CheckerFunc(func(ctx context.Context) error { return nil }),
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("status = %q, want healthy", status.Status)
	}
	if status.Checks["database"].Status != "healthy" || status.Checks["storage"].Status != "healthy" {
		t.Errorf("checks = %+v, want both healthy", status.Checks)
	}
}

func TestHealthHandler_FailingChecker(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"database": CheckerFunc(func(ctx context.Context) error { return nil }),
		"storage":  CheckerFunc(func(ctx context.Context) error { return errors.New("bucket missing") }),
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if status.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", status.Status)
	}
	if status.Checks["storage"].Message != "bucket missing" {
		t.Errorf("storage check = %+v, want the checker error surfaced", status.Checks["storage"])
	}
	if status.Checks["database"].Status != "healthy" {
		t.Errorf("database check = %+v, want healthy despite the storage failure", status.Checks["database"])
	}
}
