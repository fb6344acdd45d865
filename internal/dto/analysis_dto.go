package dto

import (
	"time"

	"ai-code-debugger/pkg/analyzer"

	"github.com/google/uuid"
)

type AnalyzeRequest struct {
	Code     string `json:"code" validate:"required"`
	Filename string `json:"filename,omitempty"`
	Mode     string `json:"mode,omitempty" validate:"omitempty,oneof=basic detailed performance"`
}

type SuggestionDTO struct {
	ErrorType  string `json:"error_type"`
	Line       int    `json:"line"`
	Suggestion string `json:"suggestion"`
}

type AnalyzeResponse struct {
	Id              uuid.UUID                   `json:"id"`
	Errors          []analyzer.Diagnostic       `json:"errors"`
	Suggestions     []SuggestionDTO             `json:"suggestions"`
	PerformanceTips []analyzer.PerformanceIssue `json:"performance_tips"`
	Complexity      analyzer.Complexity         `json:"complexity"`
	FormattedCode   string                      `json:"formatted_code"`
}

type AnalysisSummaryResponse struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename,omitempty"`
	Mode       string    `json:"mode"`
	ErrorCount int       `json:"error_count"`
	TipCount   int       `json:"tip_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type AnalysisDetailResponse struct {
	Id         uuid.UUID        `json:"id"`
	Filename   string           `json:"filename,omitempty"`
	Mode       string           `json:"mode"`
	SourceCode string           `json:"source_code"`
	Report     *analyzer.Report `json:"report"`
	CreatedAt  time.Time        `json:"created_at"`
}

// AnalysisCompletedMessage rides the in-process bus from the request path
// to the background consumer.
type AnalysisCompletedMessage struct {
	ReportId uuid.UUID        `json:"report_id"`
	ClientId string           `json:"client_id"`
	Filename string           `json:"filename,omitempty"`
	Mode     string           `json:"mode"`
	Code     string           `json:"code"`
	Report   *analyzer.Report `json:"report"`
}
