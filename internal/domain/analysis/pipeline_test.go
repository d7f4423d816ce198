package analysis

import (
	"errors"
	"testing"
)

func TestPipeline_SelectsNarrativeParser(t *testing.T) {
	report, err := NewPipeline().Analyze(Signal{Narrative: sampleCritique}, Metadata{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// unweighted mean of 7, 6, 9, 8, 5, 7 = 7.0
	if report.OverallScore != 7.0 {
		t.Errorf("overall = %v, want 7.0 via unweighted aggregation", report.OverallScore)
	}
	if report.RawData.Analysis != sampleCritique {
		t.Error("narrative raw data not echoed")
	}
}

func TestPipeline_SelectsAnnotationScorer(t *testing.T) {
	bundle := &AnnotationBundle{
		Transcript: "welcome to my product review, take a look at the features",
		Shots:      makeShots(10),
	}
	report, err := NewPipeline().Analyze(Signal{Annotations: bundle}, Metadata{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.OverallScore <= 0 {
		t.Errorf("overall = %v, want positive weighted score", report.OverallScore)
	}
	for _, cat := range Categories {
		if s := report.Category(cat).Score; s > 5 {
			t.Errorf("%s: score %v exceeds the annotation scale", cat, s)
		}
	}
	if report.RawData.Transcript != bundle.Transcript {
		t.Error("annotation raw data not echoed")
	}
}

func TestPipeline_NarrativeTakesPrecedence(t *testing.T) {
	sig := Signal{
		Narrative:   "Clarity (8/10)",
		Annotations: &AnnotationBundle{Shots: makeShots(10)},
	}
	report, err := NewPipeline().Analyze(sig, Metadata{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Clarity.Score != 8 {
		t.Errorf("clarity = %v, want 8 from the narrative source", report.Clarity.Score)
	}
	if report.RawData.ShotCount != 0 {
		t.Error("annotation data leaked into a narrative report")
	}
}

func TestPipeline_NoSignal(t *testing.T) {
	_, err := NewPipeline().Analyze(Signal{}, Metadata{})
	if !errors.Is(err, ErrNoSignal) {
		t.Errorf("err = %v, want ErrNoSignal", err)
	}
}

func TestPipeline_MetadataPassthrough(t *testing.T) {
	meta := Metadata{FileSize: 123456, Duration: 42.5}
	report, err := NewPipeline().Analyze(Signal{Narrative: "Clarity (8/10)"}, meta)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Metadata != meta {
		t.Errorf("metadata = %+v, want %+v", report.Metadata, meta)
	}
}
