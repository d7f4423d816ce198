package ai

import "context"

// Critic produces the free-form critique text for a video. The returned text
// is expected to follow the six-section template the narrative parser
// understands, but nothing downstream assumes it does.
type Critic interface {
	Critique(ctx context.Context, videoURL string) (string, error)
}
