package analysis

import "strings"

// AnnotationHeuristicScorer derives the six category analyses from the
// structured vision-annotation bundle. The rules are deliberately simple,
// auditable constants: additive bonuses per category, clamped to a 0-5
// scale, so every score can be defended to a human reviewer.
type AnnotationHeuristicScorer struct{}

func NewAnnotationHeuristicScorer() *AnnotationHeuristicScorer {
	return &AnnotationHeuristicScorer{}
}

const heuristicMaxScore = 5

func (s *AnnotationHeuristicScorer) MaxScore() float64 { return heuristicMaxScore }

// engagementCues are verbal markers of direct viewer engagement, matched
// case-insensitively as substrings of the transcript.
var engagementCues = []string{
	"you can see",
	"as you can see",
	"check this out",
	"take a look",
	"let me show",
	"notice how",
	"look at this",
	"interesting",
	"amazing",
	"important",
}

// relevanceTerms signal review-style content. Shared by the relevance and
// informativeContent rules, which are independent configuration points that
// happen to agree today.
var relevanceTerms = []string{
	"product",
	"review",
	"recommendation",
	"features",
	"quality",
	"experience",
	"opinion",
}

const (
	labelDiversityMin  = 5
	gestureConfidence  = 0.7
	shotVarietyMin     = 5
	shotVarietyStrong  = 10
	audioMinWords      = 10
	audioMinAvgWordLen = 3
	audioMaxAvgWordLen = 10
)

func (s *AnnotationHeuristicScorer) Score(sig Signal) *AnalysisReport {
	bundle := sig.Annotations
	if bundle == nil {
		bundle = &AnnotationBundle{}
	}

	labels := bundle.LabelDescriptions()
	report := &AnalysisReport{
		RawData: RawData{
			Transcript:     bundle.Transcript,
			Labels:         labels,
			TextDetections: bundle.TextDetections,
			ShotCount:      len(bundle.Shots),
			ObjectCount:    len(bundle.Objects),
			PersonCount:    len(bundle.Persons),
		},
	}

	s.scoreClarity(&report.Clarity, bundle)
	s.scoreEngagement(&report.Engagement, bundle)
	s.scoreRelevance(&report.Relevance, bundle, labels)
	s.scoreInformativeContent(&report.InformativeContent, bundle, labels)
	s.scoreVisualsAndAudio(&report.VisualsAndAudio, bundle)
	s.scorePresentation(&report.Presentation, bundle)

	for _, c := range Categories {
		slot := report.Category(c)
		slot.Score = clampScore(slot.Score, heuristicMaxScore)
		slot.Scored = true
	}
	return report
}

// clarity: a non-empty opening segment and on-screen text both help the
// viewer understand what the video is about.
func (s *AnnotationHeuristicScorer) scoreClarity(ca *CategoryAnalysis, b *AnnotationBundle) {
	if opening := openingSegment(b.Transcript); strings.TrimSpace(opening) != "" {
		ca.Score += 3
		ca.Details = append(ca.Details, "Video has a spoken introduction in the opening segment")
	}
	if len(b.TextDetections) > 0 {
		ca.Score += 2
		ca.Details = append(ca.Details, "On-screen text reinforces the spoken content")
	}
}

func (s *AnnotationHeuristicScorer) scoreEngagement(ca *CategoryAnalysis, b *AnnotationBundle) {
	cues := countEngagementCues(b.Transcript)
	switch {
	case cues >= 3:
		ca.Score += 2
		ca.Details = append(ca.Details, "Multiple direct viewer engagement cues in narration")
	case cues >= 1:
		ca.Score += 1
		ca.Details = append(ca.Details, "Some viewer engagement cues in narration")
	}
	if onScreenTextHasCue(b.TextDetections) {
		ca.Score += 1
		ca.Details = append(ca.Details, "On-screen text echoes an engagement cue")
	}
}

func (s *AnnotationHeuristicScorer) scoreRelevance(ca *CategoryAnalysis, b *AnnotationBundle, labels []string) {
	if containsAnyTerm(b.Transcript, relevanceTerms) {
		ca.Score += 2
		ca.Details = append(ca.Details, "Narration uses review-focused vocabulary")
	}
	if len(labels) >= labelDiversityMin {
		ca.Score += 2
		ca.Details = append(ca.Details, "Diverse visual content labels detected")
	}
}

// scoreInformativeContent applies the same two rules as relevance. The
// duplication is intentional: the rule sets may diverge independently.
func (s *AnnotationHeuristicScorer) scoreInformativeContent(ca *CategoryAnalysis, b *AnnotationBundle, labels []string) {
	if containsAnyTerm(b.Transcript, relevanceTerms) {
		ca.Score += 2
		ca.Details = append(ca.Details, "Narration covers concrete product details")
	}
	if len(labels) >= labelDiversityMin {
		ca.Score += 2
		ca.Details = append(ca.Details, "Label variety suggests substantive coverage")
	}
}

func (s *AnnotationHeuristicScorer) scoreVisualsAndAudio(ca *CategoryAnalysis, b *AnnotationBundle) {
	switch {
	case len(b.Shots) >= shotVarietyStrong:
		ca.Score += 2
		ca.Details = append(ca.Details, "Strong shot variety keeps the video visually interesting")
	case len(b.Shots) >= shotVarietyMin:
		ca.Score += 1
		ca.Details = append(ca.Details, "Moderate shot variety")
	}

	switch audioQualityEstimate(b.Transcript) {
	case 2:
		ca.Score += 2
		ca.Details = append(ca.Details, "Speech transcription looks clean and well-formed")
	case 1:
		ca.Score += 1
		ca.Details = append(ca.Details, "Speech was transcribed but may be sparse or noisy")
	}

	if hasConfidentGesture(b.Persons) {
		ca.Score += 1
		ca.Details = append(ca.Details, "Presenter gestures detected on camera")
	}
}

func (s *AnnotationHeuristicScorer) scorePresentation(ca *CategoryAnalysis, b *AnnotationBundle) {
	switch {
	case len(b.Shots) >= shotVarietyStrong:
		ca.Score += 2
		ca.Details = append(ca.Details, "Varied scene composition")
	case len(b.Shots) >= shotVarietyMin:
		ca.Score += 1
		ca.Details = append(ca.Details, "Some scene variety")
	}

	cues := countEngagementCues(b.Transcript)
	switch {
	case cues >= 3:
		ca.Score += 2
		ca.Details = append(ca.Details, "Presenter speaks directly to the viewer throughout")
	case cues >= 1:
		ca.Score += 1
		ca.Details = append(ca.Details, "Presenter occasionally addresses the viewer")
	}

	if hasConfidentGesture(b.Persons) {
		ca.Score += 1
		ca.Details = append(ca.Details, "Expressive presenter gestures detected")
	}
}

// openingSegment returns the first 20% of the transcript by character count.
func openingSegment(transcript string) string {
	if transcript == "" {
		return ""
	}
	n := len(transcript) / 5
	if n == 0 {
		n = len(transcript)
	}
	return transcript[:n]
}

// countEngagementCues counts distinct cues present in the transcript.
func countEngagementCues(transcript string) int {
	lower := strings.ToLower(transcript)
	count := 0
	for _, cue := range engagementCues {
		if strings.Contains(lower, cue) {
			count++
		}
	}
	return count
}

func onScreenTextHasCue(texts []string) bool {
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, cue := range engagementCues {
			if strings.Contains(lower, cue) {
				return true
			}
		}
	}
	return false
}

func containsAnyTerm(transcript string, terms []string) bool {
	lower := strings.ToLower(transcript)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// audioQualityEstimate grades the transcript as a proxy for audio quality:
// 2 for a reasonable word count with plausible average word length, 1 for any
// non-empty transcript, 0 otherwise. Garbled audio tends to transcribe into
// very short or very long tokens.
func audioQualityEstimate(transcript string) int {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return 0
	}
	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avg := float64(totalLen) / float64(len(words))
	if len(words) >= audioMinWords && avg >= audioMinAvgWordLen && avg <= audioMaxAvgWordLen {
		return 2
	}
	return 1
}

func hasConfidentGesture(persons []Person) bool {
	for _, p := range persons {
		for _, attr := range p.Attributes {
			if strings.Contains(strings.ToLower(attr.Name), "gesture") && attr.Confidence > gestureConfidence {
				return true
			}
		}
	}
	return false
}
