package analysiserrors

import (
	"context"
)

// Repository defines persistence for analysis errors
type Repository interface {
	Save(ctx context.Context, e *AnalysisError) error
	ListByReport(ctx context.Context, tenant string, reportID string, limit int) ([]*AnalysisError, error)
}
