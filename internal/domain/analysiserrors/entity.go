package analysiserrors

import "time"

// AnalysisError represents a persisted upstream failure entry
type AnalysisError struct {
	ID          int64     `json:"id"`
	TenantID    string    `json:"tenant_id"`
	ReportID    string    `json:"report_id"`
	Source      string    `json:"source,omitempty"`
	Phase       string    `json:"phase,omitempty"` // upload | annotate | critique | persist
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
