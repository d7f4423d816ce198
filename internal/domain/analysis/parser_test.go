package analysis

import (
	"encoding/json"
	"reflect"
	"testing"
)

const sampleCritique = `Here is my review of your product video.

1. **Clarity (7/10)**
Good Points:
- Opens with a clear statement of what the product is
- Speaks slowly enough to follow
Improvement Points:
- The second half drifts away from the main topic

2. **Engagement (6/10)**
Good Points:
- Friendly tone throughout
Improvement Points:
- No call to action at the end
- Long static sections

3. **Relevance (9/10)**
Good Points:
- Stays focused on the product under review
Improvement Points:
- Brief tangent about an unrelated accessory

4. **Informative Content (8/10)**
Good Points:
- Covers price, battery life, and build quality
Improvement Points:
- No comparison with alternatives

5. **Visuals and Audio Quality (5/10)**
Good Points:
- Good lighting in close-up shots
Improvement Points:
- Background hum in several segments
- Shaky handheld footage

6. **Presentation (7/10)**
Good Points:
- Confident delivery
Improvement Points:
- Reads from notes too obviously

Overall Assessment: A solid review that would benefit from better audio and a stronger ending.`

func TestParse_SampleCritique(t *testing.T) {
	report := NewNarrativeResponseParser().Parse(sampleCritique)

	want := map[Category]float64{
		CategoryClarity:            7,
		CategoryEngagement:         6,
		CategoryRelevance:          9,
		CategoryInformativeContent: 8,
		CategoryVisualsAndAudio:    5,
		CategoryPresentation:       7,
	}
	for cat, score := range want {
		got := report.Category(cat)
		if got.Score != score {
			t.Errorf("%s: score = %v, want %v", cat, got.Score, score)
		}
		if !got.Scored {
			t.Errorf("%s: expected Scored to be set", cat)
		}
	}

	if n := len(report.Clarity.GoodPoints); n != 2 {
		t.Errorf("clarity good points = %d, want 2", n)
	}
	if n := len(report.Clarity.ImprovementPoints); n != 1 {
		t.Errorf("clarity improvement points = %d, want 1", n)
	}
	if got := report.Engagement.ImprovementPoints; len(got) != 2 || got[0] != "No call to action at the end" {
		t.Errorf("engagement improvement points = %v", got)
	}
	if report.RawData.Analysis != sampleCritique {
		t.Error("raw analysis text not echoed")
	}
}

func TestParse_HeaderVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		cat  Category
		want float64
	}{
		{"plain", "Clarity (7/10)", CategoryClarity, 7},
		{"bold", "**Clarity (7/10)**", CategoryClarity, 7},
		{"ordinal", "2. Engagement (6/10)", CategoryEngagement, 6},
		{"ordinal bold", "3. **Relevance (9/10)**", CategoryRelevance, 9},
		{"upper case", "PRESENTATION (4/10)", CategoryPresentation, 4},
		{"trailing colon", "Informative Content (8/10):", CategoryInformativeContent, 8},
		{"quality suffix", "Visuals and Audio Quality (5/10)", CategoryVisualsAndAudio, 5},
		{"no quality suffix", "Visuals and Audio (5/10)", CategoryVisualsAndAudio, 5},
		{"spaced token", "Clarity ( 7 / 10 )", CategoryClarity, 7},
		{"emphasis around name", "**Clarity** (7/10)", CategoryClarity, 7},
		{"paren ordinal", "4) Informative Content (10/10)", CategoryInformativeContent, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewNarrativeResponseParser().Parse(tt.line)
			got := report.Category(tt.cat)
			if got.Score != tt.want {
				t.Errorf("Parse(%q): %s score = %v, want %v", tt.line, tt.cat, got.Score, tt.want)
			}
		})
	}
}

func TestParse_UnknownCategoryIgnored(t *testing.T) {
	report := NewNarrativeResponseParser().Parse("Storytelling (9/10)\nOverall Score (8/10)")
	for _, cat := range Categories {
		if ca := report.Category(cat); ca.Score != 0 || ca.Scored {
			t.Errorf("%s: expected untouched category, got score %v", cat, ca.Score)
		}
	}
}

func TestParse_DuplicateHeaderLastWins(t *testing.T) {
	report := NewNarrativeResponseParser().Parse("Clarity (3/10)\nClarity (8/10)")
	if report.Clarity.Score != 8 {
		t.Errorf("clarity score = %v, want 8 (last header wins)", report.Clarity.Score)
	}
}

func TestParse_BulletRouting(t *testing.T) {
	text := `Clarity (5/10)
Good Points:
- good one
Improvement Points:
- bad one
- bad two`
	report := NewNarrativeResponseParser().Parse(text)
	if !reflect.DeepEqual(report.Clarity.GoodPoints, []string{"good one"}) {
		t.Errorf("good points = %v", report.Clarity.GoodPoints)
	}
	if !reflect.DeepEqual(report.Clarity.ImprovementPoints, []string{"bad one", "bad two"}) {
		t.Errorf("improvement points = %v", report.Clarity.ImprovementPoints)
	}
}

func TestParse_OverallAssessmentStopsCollection(t *testing.T) {
	text := `Clarity (5/10)
Good Points:
- kept
Overall Assessment: all done
- dropped`
	report := NewNarrativeResponseParser().Parse(text)
	if !reflect.DeepEqual(report.Clarity.GoodPoints, []string{"kept"}) {
		t.Errorf("good points = %v, want only the bullet before the assessment", report.Clarity.GoodPoints)
	}
}

func TestParse_BulletContainingOverallAssessmentDropped(t *testing.T) {
	text := `Clarity (5/10)
Good Points:
- Overall Assessment: sneaky
- kept`
	report := NewNarrativeResponseParser().Parse(text)
	if len(report.Clarity.GoodPoints) != 0 {
		t.Errorf("good points = %v, want none: assessment bullet ends collection", report.Clarity.GoodPoints)
	}
}

func TestParse_EmptyBulletDiscarded(t *testing.T) {
	text := "Clarity (5/10)\nGood Points:\n-\n-   \n- real"
	report := NewNarrativeResponseParser().Parse(text)
	if !reflect.DeepEqual(report.Clarity.GoodPoints, []string{"real"}) {
		t.Errorf("good points = %v, want [real]", report.Clarity.GoodPoints)
	}
}

func TestParse_BulletOutsideSectionIgnored(t *testing.T) {
	text := "- stray bullet\nClarity (5/10)\n- still no section marker"
	report := NewNarrativeResponseParser().Parse(text)
	if len(report.Clarity.GoodPoints) != 0 || len(report.Clarity.ImprovementPoints) != 0 {
		t.Errorf("bullets outside a points section must be ignored, got %+v", report.Clarity)
	}
}

func TestParse_MissingCategoryStaysZero(t *testing.T) {
	report := NewNarrativeResponseParser().Parse("Clarity (7/10)")
	ca := report.Category(CategoryEngagement)
	if ca.Score != 0 || ca.Scored || len(ca.GoodPoints) != 0 || len(ca.ImprovementPoints) != 0 {
		t.Errorf("missing category should stay zero and empty, got %+v", ca)
	}

	// the report must still serialize cleanly
	b, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["engagement"]; !ok {
		t.Error("missing category absent from JSON output")
	}
}

func TestParse_ScoreClampedToScale(t *testing.T) {
	report := NewNarrativeResponseParser().Parse("Clarity (14/10)")
	if report.Clarity.Score != 10 {
		t.Errorf("clarity score = %v, want clamp to 10", report.Clarity.Score)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := NewNarrativeResponseParser()
	first := p.Parse(sampleCritique)
	second := p.Parse(sampleCritique)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same text twice produced different reports")
	}

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	if string(b1) != string(b2) {
		t.Error("serialized reports differ between identical parses")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	report := NewNarrativeResponseParser().Parse("")
	for _, cat := range Categories {
		if report.Category(cat).Score != 0 {
			t.Errorf("%s: expected zero score on empty input", cat)
		}
	}
}
