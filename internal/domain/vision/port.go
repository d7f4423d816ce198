package vision

import (
	"context"

	"github.com/jebnlang/video-analyzer/internal/domain/analysis"
)

// Annotator runs video annotation on a stored video and returns the decoded
// bundle the heuristic scorer consumes.
type Annotator interface {
	Annotate(ctx context.Context, videoURL string) (*analysis.AnnotationBundle, error)
}
