package analysis

// Pipeline turns one raw signal into a finished report: it selects the scorer
// matching the available source, runs it, then runs the aggregation mode
// paired with that scorer. Pure and synchronous; the surrounding application
// layer owns all I/O and retries and re-invokes the pipeline idempotently
// with a complete payload.
type Pipeline struct {
	parser    *NarrativeResponseParser
	heuristic *AnnotationHeuristicScorer
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		parser:    NewNarrativeResponseParser(),
		heuristic: NewAnnotationHeuristicScorer(),
	}
}

// Analyze produces a fully populated report for the signal. meta is caller
// diagnostic data and is passed through unchanged. The only failure is a
// signal with neither source present.
func (p *Pipeline) Analyze(sig Signal, meta Metadata) (*AnalysisReport, error) {
	var scorer CategoryScorer
	var mode AggregationMode

	switch {
	case sig.Narrative != "":
		scorer = p.parser
		mode = AggregateUnweighted
	case sig.Annotations != nil:
		scorer = p.heuristic
		mode = AggregateWeighted
	default:
		return nil, ErrNoSignal
	}

	report := scorer.Score(sig)
	NewScoreAggregator(mode, scorer.MaxScore()).Aggregate(report)
	report.Metadata = meta
	return report, nil
}
