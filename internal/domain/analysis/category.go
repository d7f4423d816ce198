package analysis

// Category enum for the six review dimensions
type Category string

const (
	CategoryClarity            Category = "clarity"
	CategoryEngagement         Category = "engagement"
	CategoryRelevance          Category = "relevance"
	CategoryInformativeContent Category = "informativeContent"
	CategoryVisualsAndAudio    Category = "visualsAndAudio"
	CategoryPresentation       Category = "presentation"
)

// Categories lists all dimensions in report order.
var Categories = []Category{
	CategoryClarity,
	CategoryEngagement,
	CategoryRelevance,
	CategoryInformativeContent,
	CategoryVisualsAndAudio,
	CategoryPresentation,
}

// CategoryAnalysis holds the score and qualitative points for one dimension.
// Details comes from the annotation heuristics; GoodPoints/ImprovementPoints
// come from the narrative parser. Scored distinguishes "section absent" from
// "scored exactly zero" — aggregation still keys off Score > 0 for
// compatibility, but presence is carried explicitly.
type CategoryAnalysis struct {
	Score             float64  `json:"score"`
	Details           []string `json:"details,omitempty"`
	GoodPoints        []string `json:"goodPoints,omitempty"`
	ImprovementPoints []string `json:"improvementPoints,omitempty"`
	Scored            bool     `json:"-"`
}

// Metadata is informational passthrough supplied by the caller.
type Metadata struct {
	FileSize int64   `json:"fileSize"`
	Duration float64 `json:"duration"`
}

// RawData echoes the inputs that produced a report. It is never interpreted,
// only carried for diagnostics.
type RawData struct {
	Analysis       string   `json:"analysis,omitempty"`
	Transcript     string   `json:"transcript,omitempty"`
	Labels         []string `json:"labels,omitempty"`
	TextDetections []string `json:"textDetections,omitempty"`
	ShotCount      int      `json:"shotCount,omitempty"`
	ObjectCount    int      `json:"objectCount,omitempty"`
	PersonCount    int      `json:"personCount,omitempty"`
}

// AnalysisReport is the normalized six-category quality report. It is built
// fresh per request, fully populated in one pass, and never mutated after
// being returned.
type AnalysisReport struct {
	Clarity            CategoryAnalysis `json:"clarity"`
	Engagement         CategoryAnalysis `json:"engagement"`
	Relevance          CategoryAnalysis `json:"relevance"`
	InformativeContent CategoryAnalysis `json:"informativeContent"`
	VisualsAndAudio    CategoryAnalysis `json:"visualsAndAudio"`
	Presentation       CategoryAnalysis `json:"presentation"`
	OverallScore       float64          `json:"overallScore"`
	Suggestions        []string         `json:"suggestions"`
	Metadata           Metadata         `json:"metadata"`
	RawData            RawData          `json:"rawData"`
}

// Category returns the analysis slot for c, or nil for an unknown category.
func (r *AnalysisReport) Category(c Category) *CategoryAnalysis {
	switch c {
	case CategoryClarity:
		return &r.Clarity
	case CategoryEngagement:
		return &r.Engagement
	case CategoryRelevance:
		return &r.Relevance
	case CategoryInformativeContent:
		return &r.InformativeContent
	case CategoryVisualsAndAudio:
		return &r.VisualsAndAudio
	case CategoryPresentation:
		return &r.Presentation
	default:
		return nil
	}
}

func clampScore(score, max float64) float64 {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}
