package analysis

import "time"

// Shot is one detected shot boundary.
type Shot struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// Label is one detected content label with its parent categories.
type Label struct {
	Description string   `json:"description"`
	Categories  []string `json:"categories,omitempty"`
	Confidence  float64  `json:"confidence,omitempty"`
}

// TrackedObject is one object followed across frames.
type TrackedObject struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// PersonAttribute is a detected attribute (e.g. a gesture) on a person track.
type PersonAttribute struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Person is one detected person with optional attributes.
type Person struct {
	Attributes []PersonAttribute `json:"attributes,omitempty"`
}

// AnnotationBundle is the structured signal from the vision-annotation
// service, already decoded from the provider's response shape.
type AnnotationBundle struct {
	Transcript     string          `json:"transcript"`
	Shots          []Shot          `json:"shots"`
	Labels         []Label         `json:"labels"`
	TextDetections []string        `json:"textDetections"`
	Objects        []TrackedObject `json:"objects"`
	Persons        []Person        `json:"persons"`
}

// LabelDescriptions returns the distinct label descriptions in first-seen order.
func (b *AnnotationBundle) LabelDescriptions() []string {
	seen := make(map[string]bool, len(b.Labels))
	out := make([]string, 0, len(b.Labels))
	for _, l := range b.Labels {
		if l.Description == "" || seen[l.Description] {
			continue
		}
		seen[l.Description] = true
		out = append(out, l.Description)
	}
	return out
}
