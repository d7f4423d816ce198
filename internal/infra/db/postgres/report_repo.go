package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/jebnlang/video-analyzer/internal/domain/reports"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts or updates a report record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO video_reports
  (id, tenant_id, video_url, file_name, file_size, duration, source, overall_score, result_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  video_url=EXCLUDED.video_url,
  file_name=EXCLUDED.file_name,
  file_size=EXCLUDED.file_size,
  duration=EXCLUDED.duration,
  source=EXCLUDED.source,
  overall_score=EXCLUDED.overall_score,
  result_json=EXCLUDED.result_json;
`
	tenant := stringOrDash(rep.TenantID)
	result := rep.ResultJSON
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		rep.ID, tenant, rep.VideoURL, rep.FileName, rep.FileSize,
		rep.Duration, rep.Source, rep.OverallScore, result, createdAt,
	)
	return err
}

// Get fetches one report by id
func (r *ReportRepository) Get(ctx context.Context, tenant string, id domain.ReportID) (*domain.Report, error) {
	const q = `
SELECT id, tenant_id, video_url, file_name, file_size, duration, source, overall_score, result_json, created_at
FROM video_reports
WHERE tenant_id=$1 AND id=$2;
`
	row := r.db.QueryRowContext(ctx, q, tenant, id)
	return scanReport(row)
}

// Latest returns the most recent reports, newest first
func (r *ReportRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, video_url, file_name, file_size, duration, source, overall_score, result_json, created_at
FROM video_reports
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// Paginate returns a page of reports ordered by created_at desc
func (r *ReportRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Report, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, tenant_id, video_url, file_name, file_size, duration, source, overall_score, result_json, created_at
FROM video_reports
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// Count returns the total number of reports for a tenant
func (r *ReportRepository) Count(ctx context.Context, tenant string) (int64, error) {
	const q = `SELECT COUNT(*) FROM video_reports WHERE tenant_id=$1;`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, tenant).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Summary returns report count and average overall score over sinceDays days
func (r *ReportRepository) Summary(ctx context.Context, tenant string, sinceDays int) (int, float64, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	const q = `
SELECT COUNT(*), COALESCE(AVG(overall_score), 0)
FROM video_reports
WHERE tenant_id=$1 AND created_at >= NOW() - ($2 * INTERVAL '1 day');
`
	var count int
	var avg float64
	if err := r.db.QueryRowContext(ctx, q, tenant, sinceDays).Scan(&count, &avg); err != nil {
		return 0, 0, err
	}
	return count, avg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var rep domain.Report
	var created time.Time
	if err := row.Scan(
		&rep.ID, &rep.TenantID, &rep.VideoURL, &rep.FileName, &rep.FileSize,
		&rep.Duration, &rep.Source, &rep.OverallScore, &rep.ResultJSON, &created,
	); err != nil {
		return nil, err
	}
	rep.CreatedAt = created
	return &rep, nil
}

func scanReports(rows *sql.Rows) ([]*domain.Report, error) {
	var out []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
