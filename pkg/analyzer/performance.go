package analyzer

import "strings"

// AnalyzePerformance runs the heuristic performance pass. It works on the
// cleaned logical lines, so matches inside string literals or comments do
// not trigger findings.
func AnalyzePerformance(source string) []PerformanceIssue {
	res := scan(source)
	if hasError(res.diags) {
		return []PerformanceIssue{{
			Type:       IssueAnalysisError,
			Line:       0,
			Message:    "failed to analyze performance",
			Suggestion: "Ensure the code is syntactically correct.",
		}}
	}

	var issues []PerformanceIssue

	// Indents of the loops currently enclosing the line being visited.
	var loopStack []int

	for _, l := range assembleLogical(res.lines) {
		for len(loopStack) > 0 && l.indent <= loopStack[len(loopStack)-1] {
			loopStack = loopStack[:len(loopStack)-1]
		}
		inLoop := len(loopStack) > 0

		kw := firstWord(l.text)
		isLoop := kw == "for" || kw == "while"

		if isLoop && inLoop {
			issues = append(issues, PerformanceIssue{
				Type:       IssueNestedLoop,
				Line:       l.number,
				Message:    "Nested loop detected",
				Suggestion: "Consider using alternative approaches like list comprehension or vectorized operations.",
			})
		}

		if kw == "for" && strings.Contains(l.text, "range(len(") {
			issues = append(issues, PerformanceIssue{
				Type:       IssueRangeLen,
				Line:       l.number,
				Message:    "Iteration over range(len(...))",
				Suggestion: "Iterate the sequence directly, or use enumerate() when the index is needed.",
			})
		}

		if inLoop && strings.Contains(l.text, ".append(") {
			issues = append(issues, PerformanceIssue{
				Type:       IssueAppendInLoop,
				Line:       l.number,
				Message:    "List append in loop",
				Suggestion: "Consider using list comprehension or pre-allocating the list.",
			})
		}

		if inLoop && isStringConcat(l.text) {
			issues = append(issues, PerformanceIssue{
				Type:       IssueStringConcat,
				Line:       l.number,
				Message:    "String concatenation in loop",
				Suggestion: "Collect parts in a list and join once with ''.join(parts).",
			})
		}

		if isLoop {
			loopStack = append(loopStack, l.indent)
		}
	}

	return issues
}

// isStringConcat reports whether the statement appends a string literal via
// += or self-assignment. The scanner blanks literal contents but keeps the
// quotes, so a bare quote after the operator is a reliable signal.
func isStringConcat(text string) bool {
	idx := strings.Index(text, "+=")
	if idx < 0 {
		return false
	}
	rhs := strings.TrimSpace(text[idx+2:])
	rhs = strings.TrimLeft(rhs, "frbuFRBU") // string prefixes
	return strings.HasPrefix(rhs, `"`) || strings.HasPrefix(rhs, `'`)
}
