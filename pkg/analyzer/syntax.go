package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// logicalLine is one statement after joining bracket/backslash/docstring
// continuations onto their opening physical line.
type logicalLine struct {
	number int
	indent int
	text   string // cleaned, trimmed
}

var blockKeywords = map[string]bool{
	"def": true, "class": true, "if": true, "elif": true, "else": true,
	"for": true, "while": true, "try": true, "except": true,
	"finally": true, "with": true,
}

// CheckSyntax runs the lexical and structural passes and returns all
// diagnostics ordered by line. Structural checks (missing colons, bad
// indentation) are skipped when the lexer already found hard errors,
// since they would only cascade.
func CheckSyntax(source string) []Diagnostic {
	res := scan(source)
	diags := append([]Diagnostic(nil), res.diags...)

	if !hasError(diags) {
		logical := assembleLogical(res.lines)
		diags = append(diags, checkBlocks(logical)...)
		diags = append(diags, checkIndentation(logical)...)
	}

	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Line < diags[j].Line })
	return diags
}

func hasError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func assembleLogical(lines []physLine) []logicalLine {
	var out []logicalLine
	i := 0
	for i < len(lines) {
		l := lines[i]
		if l.blank || l.continuation || l.startInString {
			i++
			continue
		}
		text := l.clean
		j := i + 1
		for j < len(lines) && (lines[j].continuation || lines[j].startInString) {
			text += " " + strings.TrimSpace(lines[j].clean)
			j++
		}
		out = append(out, logicalLine{
			number: l.number,
			indent: l.indent,
			text:   strings.TrimSpace(text),
		})
		i = j
	}
	return out
}

// checkBlocks verifies that compound-statement headers carry a colon at
// bracket depth zero.
func checkBlocks(lines []logicalLine) []Diagnostic {
	var diags []Diagnostic
	for _, l := range lines {
		kw := firstWord(l.text)
		if !blockKeywords[kw] {
			continue
		}
		if !hasTopLevelColon(l.text) {
			diags = append(diags, Diagnostic{
				Type:     DiagSyntaxError,
				Line:     l.number,
				Message:  fmt.Sprintf("expected ':' in '%s' statement", kw),
				Severity: SeverityError,
			})
		}
	}
	return diags
}

func firstWord(text string) string {
	end := 0
	for end < len(text) {
		c := text[end]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || (end > 0 && c >= '0' && c <= '9') {
			end++
			continue
		}
		break
	}
	return text[:end]
}

func hasTopLevelColon(text string) bool {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// checkIndentation replays the indentation stack the way the CPython
// tokenizer does: an opener line must be followed by a deeper statement,
// a dedent must land exactly on an enclosing level.
func checkIndentation(lines []logicalLine) []Diagnostic {
	var diags []Diagnostic
	stack := []int{0}
	expectIndent := false
	prevIndent := 0

	for _, l := range lines {
		top := stack[len(stack)-1]

		if expectIndent {
			if l.indent <= prevIndent {
				diags = append(diags, Diagnostic{
					Type:     DiagIndentationError,
					Line:     l.number,
					Message:  "expected an indented block",
					Severity: SeverityError,
				})
			} else {
				stack = append(stack, l.indent)
			}
		} else if l.indent > top {
			diags = append(diags, Diagnostic{
				Type:     DiagIndentationError,
				Line:     l.number,
				Message:  "unexpected indent",
				Severity: SeverityError,
			})
		} else if l.indent < top {
			for len(stack) > 1 && stack[len(stack)-1] > l.indent {
				stack = stack[:len(stack)-1]
			}
			if stack[len(stack)-1] != l.indent {
				diags = append(diags, Diagnostic{
					Type:     DiagIndentationError,
					Line:     l.number,
					Message:  "unindent does not match any outer indentation level",
					Severity: SeverityError,
				})
			}
		}

		expectIndent = strings.HasSuffix(l.text, ":") && hasTopLevelColon(l.text)
		prevIndent = l.indent
	}
	return diags
}
