// Package analyzer implements the local static-analysis passes over
// submitted Python source: syntax diagnostics, performance heuristics,
// complexity metrics and whitespace formatting. It is heuristic by design
// and never executes the code it inspects.
package analyzer

// Analyze runs every pass and assembles the combined report. When the
// syntax pass finds hard errors the performance pass is skipped, matching
// the behavior of running a linter on code that does not parse.
func Analyze(source string) *Report {
	report := &Report{
		Errors:        CheckSyntax(source),
		Complexity:    MeasureComplexity(source),
		FormattedCode: Format(source),
	}

	if !hasError(report.Errors) {
		report.PerformanceTips = AnalyzePerformance(source)
	}

	if report.Errors == nil {
		report.Errors = []Diagnostic{}
	}
	if report.PerformanceTips == nil {
		report.PerformanceTips = []PerformanceIssue{}
	}

	return report
}
