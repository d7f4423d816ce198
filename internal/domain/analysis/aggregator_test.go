package analysis

import (
	"reflect"
	"testing"
)

func reportWithScores(scores map[Category]float64) *AnalysisReport {
	report := &AnalysisReport{}
	for cat, s := range scores {
		slot := report.Category(cat)
		slot.Score = s
		slot.Scored = true
	}
	return report
}

func TestAggregate_UnweightedExcludesZeroScores(t *testing.T) {
	report := reportWithScores(map[Category]float64{
		CategoryClarity:            6,
		CategoryEngagement:         0,
		CategoryRelevance:          8,
		CategoryInformativeContent: 0,
		CategoryVisualsAndAudio:    4,
		CategoryPresentation:       0,
	})
	NewScoreAggregator(AggregateUnweighted, 10).Aggregate(report)
	if report.OverallScore != 6.0 {
		t.Errorf("overall = %v, want 6.0 (mean of 6, 8, 4)", report.OverallScore)
	}
}

func TestAggregate_UnweightedAllZero(t *testing.T) {
	report := &AnalysisReport{}
	NewScoreAggregator(AggregateUnweighted, 10).Aggregate(report)
	if report.OverallScore != 0 {
		t.Errorf("overall = %v, want 0 when nothing scored", report.OverallScore)
	}
}

func TestAggregate_UnweightedRounding(t *testing.T) {
	report := reportWithScores(map[Category]float64{
		CategoryClarity:    7,
		CategoryEngagement: 6,
		CategoryRelevance:  8,
	})
	NewScoreAggregator(AggregateUnweighted, 10).Aggregate(report)
	if report.OverallScore != 7.0 {
		t.Errorf("overall = %v, want 7.0", report.OverallScore)
	}

	report = reportWithScores(map[Category]float64{
		CategoryClarity:    7,
		CategoryEngagement: 6,
	})
	NewScoreAggregator(AggregateUnweighted, 10).Aggregate(report)
	if report.OverallScore != 6.5 {
		t.Errorf("overall = %v, want 6.5", report.OverallScore)
	}
}

func TestAggregate_WeightedUniformInputIsWeightInvariant(t *testing.T) {
	scores := map[Category]float64{}
	for _, cat := range Categories {
		scores[cat] = 4
	}
	report := reportWithScores(scores)
	NewScoreAggregator(AggregateWeighted, 5).Aggregate(report)
	if report.OverallScore != 4.0 {
		t.Errorf("overall = %v, want 4.0 for uniform scores", report.OverallScore)
	}
}

func TestAggregate_WeightedMixedScores(t *testing.T) {
	report := reportWithScores(map[Category]float64{
		CategoryClarity:            5,
		CategoryEngagement:         3,
		CategoryRelevance:          4,
		CategoryInformativeContent: 2,
		CategoryVisualsAndAudio:    1,
		CategoryPresentation:       0,
	})
	NewScoreAggregator(AggregateWeighted, 5).Aggregate(report)
	// (5*1.0 + 3*1.5 + 4*1.5 + 2*1.5 + 1*2.0 + 0*1.5) / 9.0 = 2.277... -> 2.3
	if report.OverallScore != 2.3 {
		t.Errorf("overall = %v, want 2.3", report.OverallScore)
	}
}

func TestAggregate_SuggestionsForUnderperformingCategories(t *testing.T) {
	report := reportWithScores(map[Category]float64{
		CategoryClarity:            2, // below 3 of 5
		CategoryEngagement:         3,
		CategoryRelevance:          4,
		CategoryInformativeContent: 1, // below
		CategoryVisualsAndAudio:    5,
		CategoryPresentation:       3,
	})
	NewScoreAggregator(AggregateWeighted, 5).Aggregate(report)

	want := []string{
		suggestionTexts[CategoryClarity],
		suggestionTexts[CategoryInformativeContent],
	}
	if !reflect.DeepEqual(report.Suggestions, want) {
		t.Errorf("suggestions = %v, want %v", report.Suggestions, want)
	}
}

func TestAggregate_SuggestionThresholdScalesWithMax(t *testing.T) {
	report := reportWithScores(map[Category]float64{
		CategoryClarity:            5, // below 6 of 10
		CategoryEngagement:         6,
		CategoryRelevance:          7,
		CategoryInformativeContent: 8,
		CategoryVisualsAndAudio:    9,
		CategoryPresentation:       10,
	})
	NewScoreAggregator(AggregateUnweighted, 10).Aggregate(report)

	want := []string{suggestionTexts[CategoryClarity]}
	if !reflect.DeepEqual(report.Suggestions, want) {
		t.Errorf("suggestions = %v, want %v", report.Suggestions, want)
	}
}

func TestAggregate_NoSuggestionsWhenAllHealthy(t *testing.T) {
	scores := map[Category]float64{}
	for _, cat := range Categories {
		scores[cat] = 5
	}
	report := reportWithScores(scores)
	NewScoreAggregator(AggregateWeighted, 5).Aggregate(report)
	if len(report.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want none", report.Suggestions)
	}
}

func TestAggregate_OneSuggestionPerCategory(t *testing.T) {
	report := &AnalysisReport{} // everything at zero
	NewScoreAggregator(AggregateWeighted, 5).Aggregate(report)
	if len(report.Suggestions) != len(Categories) {
		t.Fatalf("suggestions = %d, want one per category", len(report.Suggestions))
	}
	seen := map[string]bool{}
	for _, s := range report.Suggestions {
		if seen[s] {
			t.Errorf("duplicate suggestion: %q", s)
		}
		seen[s] = true
	}
}
