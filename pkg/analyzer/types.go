package analyzer

// Diagnostic is a single finding from the syntax pass.
type Diagnostic struct {
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error" | "warning"
}

// PerformanceIssue is a single finding from the performance pass.
type PerformanceIssue struct {
	Type       string `json:"type"`
	Line       int    `json:"line"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// Complexity holds coarse structural metrics of the submitted source.
type Complexity struct {
	Cyclomatic        int `json:"cyclomatic"`
	NumberOfFunctions int `json:"number_of_functions"`
	LinesOfCode       int `json:"lines_of_code"`
}

// Report is the combined output of all local passes.
type Report struct {
	Errors          []Diagnostic       `json:"errors"`
	PerformanceTips []PerformanceIssue `json:"performance_tips"`
	Complexity      Complexity         `json:"complexity"`
	FormattedCode   string             `json:"formatted_code"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"

	DiagSyntaxError        = "SyntaxError"
	DiagIndentationError   = "IndentationError"
	DiagUnterminatedString = "UnterminatedString"
	DiagUnbalancedBracket  = "UnbalancedBracket"
	DiagTabError           = "TabError"

	IssueNestedLoop    = "NestedLoop"
	IssueAppendInLoop  = "InefficientListOperation"
	IssueStringConcat  = "StringConcatInLoop"
	IssueRangeLen      = "RangeLenIteration"
	IssueAnalysisError = "AnalysisError"
)
