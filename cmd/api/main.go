package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jebnlang/video-analyzer/internal/application"
	appanalyses "github.com/jebnlang/video-analyzer/internal/application/analyses"
	"github.com/jebnlang/video-analyzer/internal/config"
	"github.com/jebnlang/video-analyzer/internal/domain/analysis"
	"github.com/jebnlang/video-analyzer/internal/domain/vision"
	aiopenai "github.com/jebnlang/video-analyzer/internal/infra/ai/openai"
	mysqlp "github.com/jebnlang/video-analyzer/internal/infra/db/mysql"
	postgresp "github.com/jebnlang/video-analyzer/internal/infra/db/postgres"
	"github.com/jebnlang/video-analyzer/internal/infra/httpserver"
	"github.com/jebnlang/video-analyzer/internal/infra/probe"
	minioStore "github.com/jebnlang/video-analyzer/internal/infra/storage"
	visiongoogle "github.com/jebnlang/video-analyzer/internal/infra/vision/google"
	"github.com/jebnlang/video-analyzer/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database
	var db *sql.DB
	svc := &appanalyses.Service{
		Pipeline: analysis.NewPipeline(),
		Clock:    application.SystemClock{},
	}
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		svc.Reports = postgresp.NewReportRepository(db)
		svc.Errors = postgresp.NewAnalysisErrorRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		svc.Reports = mysqlp.NewReportRepository(db)
		svc.Errors = mysqlp.NewAnalysisErrorRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}
	svc.Videos = store

	// pick the signal source: vision annotations when enabled, otherwise the
	// generative critique
	var annotator vision.Annotator
	if cfg.Vision.Enabled {
		va, err := visiongoogle.New(ctx, cfg.Vision.LanguageCode)
		if err != nil {
			log.Fatalf("vision init error: %v", err)
		}
		defer va.Close()
		annotator = va
	}
	svc.Annotator = annotator
	svc.Critic = aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	prober := probe.NewProber()
	if err := probe.Available(); err != nil {
		log.Printf("warning: %v; report durations will be 0", err)
		prober = nil
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	capacity, refill := cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate
	if capacity <= 0 {
		capacity = 30
	}
	if refill <= 0 {
		refill = 1
	}
	mux.Use(middleware.RateLimitMiddleware(capacity, refill))
	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  middleware.CheckerFunc(store.Ping),
	}
	mux.Mount("/", httpserver.NewRouter(svc, prober, cfg.Server.MaxUploadMB, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
		// analysis requests block on upstream AI calls, so the write side
		// needs far more headroom than a typical API
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
