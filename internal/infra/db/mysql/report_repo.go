package mysql

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
VALUES (?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  video_url=VALUES(video_url), file_name=VALUES(file_name), file_size=VALUES(file_size),
  duration=VALUES(duration), source=VALUES(source), overall_score=VALUES(overall_score),
  result_json=VALUES(result_json);
`
	tenant := stringOrDash(rep.TenantID)
	result := rep.ResultJSON
	if strings.TrimSpace(result) == "" {
		// result_json column requires valid JSON; use empty object
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
WHERE tenant_id=? AND id=?;
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
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ?;
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
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
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
	const q = `SELECT COUNT(*) FROM video_reports WHERE tenant_id=?;`
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
WHERE tenant_id=? AND created_at >= DATE_SUB(NOW(), INTERVAL ? DAY);
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
