package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalyses "github.com/jebnlang/video-analyzer/internal/application/analyses"
	domai "github.com/jebnlang/video-analyzer/internal/domain/ai"
	"github.com/jebnlang/video-analyzer/internal/domain/analysis"
	domreports "github.com/jebnlang/video-analyzer/internal/domain/reports"
	"github.com/jebnlang/video-analyzer/internal/infra/probe"
	"github.com/jebnlang/video-analyzer/internal/middleware"
)

type Router struct {
	svc         *appanalyses.Service
	prober      *probe.Prober
	maxUploadMB int64
}

func NewRouter(svc *appanalyses.Service, prober *probe.Prober, maxUploadMB int64, checkers map[string]middleware.HealthChecker) http.Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 100
	}
	r := &Router{svc: svc, prober: prober, maxUploadMB: maxUploadMB}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/videos/analyze", r.wrap(r.handleAnalyzeVideo))
		rt.Post("/text/analyze", r.wrap(r.handleAnalyzeText))
		rt.Post("/uploads/token", r.wrap(r.handleUploadToken))
		rt.Get("/reports", r.wrap(r.handleList))
		rt.Get("/reports/latest", r.wrap(r.handleLatest))
		rt.Get("/reports/{id}", r.wrap(r.handleGet))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks caller mistakes so wrap maps them to 400
type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return badRequestError{err: fmt.Errorf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br badRequestError
			switch {
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, analysis.ErrNoSignal):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.As(err, &br):
				http.Error(w, br.Error(), http.StatusBadRequest)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/{tenant}/videos/analyze
// multipart/form-data with a "video" file field. Runs the full analysis
// synchronously and returns the stored report.
func (r *Router) handleAnalyzeVideo(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest("%v", err)
	}

	maxBytes := r.maxUploadMB << 20
	req.Body = http.MaxBytesReader(w, req.Body, maxBytes+(1<<20))
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		return badRequest("parse upload: %v", err)
	}

	file, header, err := req.FormFile("video")
	if err != nil {
		return badRequest("missing video field: %v", err)
	}
	defer file.Close()

	fileName := middleware.SanitizeString(header.Filename)
	if err := middleware.ValidateFileName(fileName); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidateVideoFormat(fileName); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidateFileSize(header.Size, maxBytes); err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return nil
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(fileName))
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	tmp.Close()

	var duration float64
	if r.prober != nil {
		duration = r.prober.Duration(req.Context(), tmp.Name())
	}

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	res, err := r.svc.AnalyzeVideo(req.Context(), appanalyses.AnalyzeVideoCommand{
		TenantID:  tenant,
		LocalPath: tmp.Name(),
		FileName:  fileName,
		FileSize:  header.Size,
		Duration:  duration,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// POST /v1/{tenant}/text/analyze
// Body: {"analysis": "<critique text>", "file_size": n, "duration": s}
func (r *Router) handleAnalyzeText(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest("%v", err)
	}

	var body struct {
		Analysis string  `json:"analysis"`
		FileSize int64   `json:"file_size"`
		Duration float64 `json:"duration"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("decode body: %v", err)
	}
	if body.Analysis == "" {
		return badRequest("analysis text is required")
	}

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	res, err := r.svc.AnalyzeText(req.Context(), tenant, body.Analysis, analysis.Metadata{
		FileSize: body.FileSize,
		Duration: body.Duration,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// POST /v1/{tenant}/uploads/token
// Body: {"file_name": "<name>"} -> {"upload_url": "..."}
func (r *Router) handleUploadToken(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest("%v", err)
	}

	var body struct {
		FileName string `json:"file_name"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("decode body: %v", err)
	}
	fileName := middleware.SanitizeString(body.FileName)
	if err := middleware.ValidateFileName(fileName); err != nil {
		return badRequest("%v", err)
	}
	if err := middleware.ValidateVideoFormat(fileName); err != nil {
		return badRequest("%v", err)
	}

	url, err := r.svc.IssueUploadToken(req.Context(), tenant, fileName)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"upload_url": url})
}

// GET /v1/{tenant}/reports?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.List(req.Context(), tenant, page, middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/reports/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Latest(req.Context(), tenant, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/reports/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateReportID(id); err != nil {
		return badRequest("%v", err)
	}

	report, err := r.svc.Get(req.Context(), tenant, domreports.ReportID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(report)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.svc.Summary(req.Context(), tenant, middleware.ValidateDays(days))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}
