package analysis

import "errors"

// ErrNoSignal indicates neither a narrative text nor an annotation bundle was
// supplied, so there is nothing to score.
var ErrNoSignal = errors.New("no analyzable signal: need narrative text or an annotation bundle")

// Signal carries whichever raw inputs are available for one analysis.
// Narrative takes precedence when both are set.
type Signal struct {
	Narrative   string
	Annotations *AnnotationBundle
}

// CategoryScorer derives the six category analyses from one signal source.
// The two implementations use incompatible scales (0-5 heuristic, 0-10
// narrative) on purpose; nothing normalizes between them.
type CategoryScorer interface {
	// MaxScore is the upper bound of the per-category scale.
	MaxScore() float64
	// Score fills the six categories of a fresh report, leaving overallScore
	// and suggestions for the aggregator. It never fails: input it cannot
	// recognize leaves the affected category at zero with empty lists.
	Score(sig Signal) *AnalysisReport
}
