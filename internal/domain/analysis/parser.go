package analysis

import (
	"bufio"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// NarrativeResponseParser extracts the six category analyses from the
// free-form critique text produced by the generative model. The text follows
// a loose template: per category a header line with a "(<n>/10)" score token,
// a "Good Points:" bullet list, an "Improvement Points:" bullet list, and a
// closing "Overall Assessment:" line. The template is an external contract we
// do not control, so parsing is tolerant: anything unrecognized is skipped
// and the affected category stays at zero.
type NarrativeResponseParser struct{}

func NewNarrativeResponseParser() *NarrativeResponseParser {
	return &NarrativeResponseParser{}
}

const narrativeMaxScore = 10

func (p *NarrativeResponseParser) MaxScore() float64 { return narrativeMaxScore }

func (p *NarrativeResponseParser) Score(sig Signal) *AnalysisReport {
	return p.Parse(sig.Narrative)
}

// parser states
type parseState int

const (
	seekingSection parseState = iota
	collectingGoodPoints
	collectingImprovementPoints
)

// headerPattern matches a category header line: optional leading markup and
// ordinal numbering, the category name, then a (<int>/10) score token.
// Trailing punctuation after the token is not anchored and therefore ignored.
var headerPattern = regexp.MustCompile(`(?i)^[#>*_\s]*(?:\d+[.)]\s*)?[*_]*([a-z][a-z ]*?)[*_\s:]*\(\s*(\d+)\s*/\s*10\s*\)`)

// headerCategories maps normalized header text to its category. Anything
// outside this table is ignored.
var headerCategories = map[string]Category{
	"clarity":                   CategoryClarity,
	"engagement":                CategoryEngagement,
	"relevance":                 CategoryRelevance,
	"informative content":       CategoryInformativeContent,
	"visuals and audio":         CategoryVisualsAndAudio,
	"visuals and audio quality": CategoryVisualsAndAudio,
	"presentation":              CategoryPresentation,
}

// Parse walks the critique line by line and fills the six categories.
// overallScore and suggestions are left for the aggregator. Parse never
// fails; a category whose section cannot be located keeps score 0 and empty
// lists. Duplicate headers for the same category overwrite the score.
func (p *NarrativeResponseParser) Parse(text string) *AnalysisReport {
	report := &AnalysisReport{
		RawData: RawData{Analysis: text},
	}

	state := seekingSection
	var active *CategoryAnalysis
	matched := 0

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if cat, score, ok := matchHeader(line); ok {
			if slot := report.Category(cat); slot != nil {
				slot.Score = clampScore(float64(score), narrativeMaxScore)
				slot.Scored = true
				active = slot
				state = seekingSection
				matched++
			}
			continue
		}

		switch {
		case strings.Contains(lower, "good points:"):
			state = collectingGoodPoints
		case strings.Contains(lower, "improvement points:"):
			state = collectingImprovementPoints
		case strings.HasPrefix(line, "-") && active != nil && state != seekingSection:
			point := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if strings.Contains(strings.ToLower(point), "overall assessment:") {
				state = seekingSection
				continue
			}
			if point == "" {
				continue
			}
			if state == collectingGoodPoints {
				active.GoodPoints = append(active.GoodPoints, point)
			} else {
				active.ImprovementPoints = append(active.ImprovementPoints, point)
			}
		case strings.Contains(lower, "overall assessment:"):
			state = seekingSection
		}
	}

	// Conformance flag: zero recognized headers on non-empty input means the
	// upstream critique template likely changed.
	if matched == 0 && strings.TrimSpace(text) != "" {
		log.Printf("narrative parser: no category headers recognized; upstream template may have changed")
	}

	return report
}

// matchHeader reports whether line is a category header and, if so, which
// category and integer score it carries.
func matchHeader(line string) (Category, int, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	name := strings.ToLower(strings.TrimSpace(m[1]))
	cat, ok := headerCategories[name]
	if !ok {
		return "", 0, false
	}
	score, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return cat, score, true
}
