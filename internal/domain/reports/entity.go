package reports

import "time"

// ReportID identifier type
type ReportID string

// Source enum: which signal produced the report
type Source string

const (
	SourceAnnotation Source = "annotation"
	SourceNarrative  Source = "narrative"
)

// Report is an analysis result stored for auditing and retrieval. ResultJSON
// holds the serialized AnalysisReport exactly as returned to the caller.
type Report struct {
	ID           ReportID  `json:"id"`
	TenantID     string    `json:"tenant_id"`
	VideoURL     string    `json:"video_url,omitempty"`
	FileName     string    `json:"file_name,omitempty"`
	FileSize     int64     `json:"file_size"`
	Duration     float64   `json:"duration"`
	Source       Source    `json:"source"`
	OverallScore float64   `json:"overall_score"`
	ResultJSON   string    `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}
