package analysis

import "math"

// AggregationMode selects how the overall score is computed. The two scorers
// pair with different modes and the difference is observable behavior, so it
// is kept explicit rather than folded into one formula.
type AggregationMode int

const (
	// AggregateWeighted pairs with the annotation heuristic scorer: a
	// weighted average over all six categories.
	AggregateWeighted AggregationMode = iota
	// AggregateUnweighted pairs with the narrative parser: an arithmetic
	// mean over the categories that scored above zero.
	AggregateUnweighted
)

// categoryWeights for the weighted mode. Visual quality counts double the
// baseline; clarity is the baseline.
var categoryWeights = map[Category]float64{
	CategoryClarity:            1.0,
	CategoryEngagement:         1.5,
	CategoryRelevance:          1.5,
	CategoryInformativeContent: 1.5,
	CategoryVisualsAndAudio:    2.0,
	CategoryPresentation:       1.5,
}

// suggestionTexts holds one fixed remediation sentence per category,
// appended when that category scores below the threshold.
var suggestionTexts = map[Category]string{
	CategoryClarity:            "Enhance the introduction with a clear purpose statement and product overview.",
	CategoryEngagement:         "Add more direct viewer engagement cues and calls to action throughout the video.",
	CategoryRelevance:          "Keep the narration focused on the product under review and its key selling points.",
	CategoryInformativeContent: "Include more concrete details such as features, specifications, and hands-on experience.",
	CategoryVisualsAndAudio:    "Improve visual pacing with more varied shots and record narration in a quieter environment.",
	CategoryPresentation:       "Work on delivery with more camera presence, gestures, and scene variety.",
}

// suggestionThresholdRatio is the fraction of the scale below which a
// category earns its remediation sentence (3 of 5, 6 of 10).
const suggestionThresholdRatio = 0.6

// ScoreAggregator computes the overall score and the suggestion list from an
// already-scored report.
type ScoreAggregator struct {
	mode     AggregationMode
	maxScore float64
}

func NewScoreAggregator(mode AggregationMode, maxScore float64) *ScoreAggregator {
	return &ScoreAggregator{mode: mode, maxScore: maxScore}
}

// Aggregate fills report.OverallScore and report.Suggestions in place.
func (a *ScoreAggregator) Aggregate(report *AnalysisReport) {
	switch a.mode {
	case AggregateUnweighted:
		report.OverallScore = unweightedOverall(report)
	default:
		report.OverallScore = weightedOverall(report)
	}
	report.Suggestions = a.suggestions(report)
}

func weightedOverall(report *AnalysisReport) float64 {
	var sum, weightSum float64
	for _, c := range Categories {
		w := categoryWeights[c]
		sum += report.Category(c).Score * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return round1(sum / weightSum)
}

// unweightedOverall averages only the categories that scored above zero.
// A zero score means either "section absent" or a genuine zero; both are
// excluded, which the narrative flow depends on.
func unweightedOverall(report *AnalysisReport) float64 {
	var sum float64
	var n int
	for _, c := range Categories {
		if score := report.Category(c).Score; score > 0 {
			sum += score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round1(sum / float64(n))
}

// suggestions returns one remediation sentence per underperforming category,
// in report order, at most one per category.
func (a *ScoreAggregator) suggestions(report *AnalysisReport) []string {
	threshold := a.maxScore * suggestionThresholdRatio
	out := make([]string, 0, len(Categories))
	for _, c := range Categories {
		if report.Category(c).Score < threshold {
			out = append(out, suggestionTexts[c])
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
