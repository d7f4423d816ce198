package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jebnlang/video-analyzer/internal/application"
	"github.com/jebnlang/video-analyzer/internal/domain/ai"
	"github.com/jebnlang/video-analyzer/internal/domain/analysis"
	"github.com/jebnlang/video-analyzer/internal/domain/analysiserrors"
	"github.com/jebnlang/video-analyzer/internal/domain/reports"
	"github.com/jebnlang/video-analyzer/internal/domain/vision"
)

// Service implements the analysis use-cases: land the uploaded video in blob
// storage, obtain one signal from an upstream service, run the scoring
// pipeline, and persist the resulting report. Safe for concurrent use.
type Service struct {
	Reports   reports.Repository
	Errors    analysiserrors.Repository
	Critic    ai.Critic
	Annotator vision.Annotator
	Videos    reports.VideoStore
	Pipeline  *analysis.Pipeline
	Clock     application.Clock
}

// AnalyzeVideoCommand describes one uploaded video ready for analysis.
// LocalPath points at the multipart upload already written to disk by the
// HTTP layer; the service owns it from here and removes it when done.
type AnalyzeVideoCommand struct {
	TenantID  string
	LocalPath string
	FileName  string
	FileSize  int64
	Duration  float64
}

// AnalyzeResult pairs the stored report row ID with the full report payload.
type AnalyzeResult struct {
	ID        string                   `json:"id"`
	Source    reports.Source           `json:"source"`
	VideoURL  string                   `json:"video_url,omitempty"`
	Report    *analysis.AnalysisReport `json:"report"`
	CreatedAt time.Time                `json:"created_at"`
}

// AnalyzeVideo uploads the video, gathers a signal (vision annotations when
// an annotator is configured, the generative critique otherwise), runs the
// pipeline and persists the report.
func (s *Service) AnalyzeVideo(ctx context.Context, cmd AnalyzeVideoCommand) (*AnalyzeResult, error) {
	now := s.Clock.Now()
	id := uuid.New().String()

	key := fmt.Sprintf("%s/videos/%s-%s", cmd.TenantID, id, filepath.Base(cmd.FileName))
	url, err := s.Videos.UploadAndCleanup(ctx, cmd.LocalPath, key)
	if err != nil {
		os.Remove(cmd.LocalPath)
		s.recordError(cmd.TenantID, id, "", "upload", err)
		return nil, fmt.Errorf("store video: %w", err)
	}

	var sig analysis.Signal
	var source reports.Source
	if s.Annotator != nil {
		bundle, aerr := s.Annotator.Annotate(ctx, url)
		if aerr != nil {
			s.recordError(cmd.TenantID, id, string(reports.SourceAnnotation), "annotate", aerr)
			return nil, fmt.Errorf("annotate video: %w", aerr)
		}
		sig.Annotations = bundle
		source = reports.SourceAnnotation
	} else {
		text, cerr := s.Critic.Critique(ctx, url)
		if cerr != nil {
			s.recordError(cmd.TenantID, id, string(reports.SourceNarrative), "critique", cerr)
			return nil, fmt.Errorf("critique video: %w", cerr)
		}
		sig.Narrative = text
		source = reports.SourceNarrative
	}

	report, err := s.Pipeline.Analyze(sig, analysis.Metadata{FileSize: cmd.FileSize, Duration: cmd.Duration})
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, cmd.TenantID, id, url, cmd, source, report, now); err != nil {
		s.recordError(cmd.TenantID, id, string(source), "persist", err)
		return nil, err
	}

	return &AnalyzeResult{
		ID:        id,
		Source:    source,
		VideoURL:  url,
		Report:    report,
		CreatedAt: now,
	}, nil
}

// AnalyzeText runs the narrative pipeline on caller-supplied critique text,
// with no upstream call. Useful when the critique was produced elsewhere.
func (s *Service) AnalyzeText(ctx context.Context, tenant, text string, meta analysis.Metadata) (*AnalyzeResult, error) {
	now := s.Clock.Now()
	id := uuid.New().String()

	report, err := s.Pipeline.Analyze(analysis.Signal{Narrative: text}, meta)
	if err != nil {
		return nil, err
	}

	cmd := AnalyzeVideoCommand{TenantID: tenant, FileSize: meta.FileSize, Duration: meta.Duration}
	if err := s.save(ctx, tenant, id, "", cmd, reports.SourceNarrative, report, now); err != nil {
		s.recordError(tenant, id, string(reports.SourceNarrative), "persist", err)
		return nil, err
	}

	return &AnalyzeResult{
		ID:        id,
		Source:    reports.SourceNarrative,
		Report:    report,
		CreatedAt: now,
	}, nil
}

// IssueUploadToken returns a presigned PUT URL so clients can push large
// videos straight to blob storage.
func (s *Service) IssueUploadToken(ctx context.Context, tenant, fileName string) (string, error) {
	key := fmt.Sprintf("%s/uploads/%s-%s", tenant, uuid.New().String(), filepath.Base(fileName))
	return s.Videos.PresignedPut(ctx, key, 15*time.Minute)
}

// Get fetches one report by id
func (s *Service) Get(ctx context.Context, tenant string, id reports.ReportID) (*reports.Report, error) {
	return s.Reports.Get(ctx, tenant, id)
}

// Latest fetches the N most recent reports
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*reports.Report, error) {
	return s.Reports.Latest(ctx, tenant, limit)
}

// List returns one page of reports with pagination metadata
func (s *Service) List(ctx context.Context, tenant string, page, pageSize int) (*reports.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	data, err := s.Reports.Paginate(ctx, tenant, page, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.Reports.Count(ctx, tenant)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &reports.PaginatedResult{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Summary rolls up report volume and average overall score over N days
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (map[string]any, error) {
	count, avg, err := s.Reports.Summary(ctx, tenant, sinceDays)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_reports": count,
		"average_score": avg,
		"since_days":    sinceDays,
	}, nil
}

func (s *Service) save(ctx context.Context, tenant, id, url string, cmd AnalyzeVideoCommand, source reports.Source, report *analysis.AnalysisReport, now time.Time) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return s.Reports.Save(ctx, &reports.Report{
		ID:           reports.ReportID(id),
		TenantID:     tenant,
		VideoURL:     url,
		FileName:     cmd.FileName,
		FileSize:     cmd.FileSize,
		Duration:     cmd.Duration,
		Source:       source,
		OverallScore: report.OverallScore,
		ResultJSON:   string(payload),
		CreatedAt:    now,
	})
}

// recordError best-effort persists an upstream failure for auditing; the
// original error is what gets returned to the caller.
func (s *Service) recordError(tenant, reportID, source, phase string, cause error) {
	if s.Errors == nil {
		return
	}
	_ = s.Errors.Save(context.Background(), &analysiserrors.AnalysisError{
		TenantID:  tenant,
		ReportID:  reportID,
		Source:    source,
		Phase:     phase,
		Message:   cause.Error(),
		CreatedAt: s.Clock.Now(),
	})
}
