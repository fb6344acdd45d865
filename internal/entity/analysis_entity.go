package entity

import (
	"time"

	"ai-code-debugger/pkg/analyzer"

	"github.com/google/uuid"
)

// AnalysisRecord is one persisted debugging run: the submitted source plus
// the full report the analyzer produced for it.
type AnalysisRecord struct {
	Id         uuid.UUID
	ClientId   string
	Filename   string
	Mode       string
	SourceCode string
	Report     *analyzer.Report
	ErrorCount int
	TipCount   int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
