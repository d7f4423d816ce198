package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	domain "github.com/jebnlang/video-analyzer/internal/domain/analysiserrors"
)

type AnalysisErrorRepository struct {
	db *sql.DB
}

func NewAnalysisErrorRepository(db *sql.DB) *AnalysisErrorRepository {
	return &AnalysisErrorRepository{db: db}
}

func (r *AnalysisErrorRepository) Save(ctx context.Context, e *domain.AnalysisError) error {
	const q = `
INSERT INTO video_report_errors
  (tenant_id, report_id, source, phase, message, details_json, created_at)
VALUES (?,?,?,?,?,?,?)
`
	tenant := stringOrDash(e.TenantID)
	report := stringOrDash(e.ReportID)
	source := stringOrDash(e.Source)
	phase := stringOrDash(e.Phase)
	msg := e.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	details := e.DetailsJSON
	if strings.TrimSpace(details) == "" {
		details = "{}"
	} else {
		// ensure valid json; if invalid, wrap as string field
		var js any
		if json.Unmarshal([]byte(details), &js) != nil {
			b, _ := json.Marshal(map[string]string{"raw": details})
			details = string(b)
		}
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, tenant, report, source, phase, msg, details, created)
	return err
}

func (r *AnalysisErrorRepository) ListByReport(ctx context.Context, tenant string, reportID string, limit int) ([]*domain.AnalysisError, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, report_id, source, phase, message, details_json, created_at
FROM video_report_errors
WHERE tenant_id = ? AND report_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, tenant, reportID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.AnalysisError
	for rows.Next() {
		var e domain.AnalysisError
		var created time.Time
		if err := rows.Scan(&e.ID, &e.TenantID, &e.ReportID, &e.Source, &e.Phase, &e.Message, &e.DetailsJSON, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = created
		out = append(out, &e)
	}
	return out, rows.Err()
}
