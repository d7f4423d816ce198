package reports

import (
	"context"
	"time"
)

// Repository port for persisting and querying analysis reports
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, tenant string, id ReportID) (*Report, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Report, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*Report, error)
	Count(ctx context.Context, tenant string) (int64, error)

	// Summary returns report count and average overall score over the last
	// sinceDays days.
	Summary(ctx context.Context, tenant string, sinceDays int) (int, float64, error)
}

// VideoStore port for storing uploaded videos and issuing direct-upload URLs
type VideoStore interface {
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
	PresignedPut(ctx context.Context, key string, expiry time.Duration) (string, error)
}
