package store

import "github.com/google/uuid"

// Workspace is the active per-client state held in memory for the lifetime
// of a browser session: the code being debugged and a summary of the last
// analysis. Chat prompts embed this context.
type Workspace struct {
	ClientID string `json:"client_id"`

	Code     string `json:"code"`
	Filename string `json:"filename"`
	Mode     string `json:"mode"` // "basic" | "detailed" | "performance"

	LastReportID   uuid.UUID `json:"last_report_id"`
	LastErrorCount int       `json:"last_error_count"`
	LastTipCount   int       `json:"last_tip_count"`
}
