package analyzer

import "strings"

// decision-point keywords counted toward cyclomatic complexity
var decisionKeywords = map[string]bool{
	"if": true, "elif": true, "while": true, "for": true, "except": true,
}

// MeasureComplexity computes coarse structural metrics: one decision point
// per branch/loop/handler statement, a function count, and physical LOC.
func MeasureComplexity(source string) Complexity {
	res := scan(source)

	c := Complexity{
		LinesOfCode: len(strings.Split(source, "\n")),
	}

	for _, l := range assembleLogical(res.lines) {
		kw := firstWord(l.text)
		if decisionKeywords[kw] {
			c.Cyclomatic++
		}
		if kw == "def" {
			c.NumberOfFunctions++
		}
	}

	return c
}
