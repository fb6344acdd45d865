package analyzer

import (
	"fmt"
	"strings"
)

// physLine is one physical source line after string/comment stripping.
type physLine struct {
	number        int    // 1-based
	raw           string
	clean         string // string literals blanked (quotes kept), comments removed
	indent        int    // leading whitespace width, tab = 4
	blank         bool   // empty or comment-only
	startInString bool   // line begins inside a multi-line string
	endInString   bool   // line ends inside a multi-line string
	continuation  bool   // continues the previous line (open bracket or backslash)
	openDepth     int    // bracket depth at end of line
	mixedIndent   bool   // tabs and spaces mixed in the leading whitespace
}

// scanResult is the shared intermediate form for all analysis passes.
type scanResult struct {
	lines []physLine
	diags []Diagnostic
}

type bracket struct {
	char rune
	line int
}

var bracketPairs = map[rune]rune{')': '(', ']': '[', '}': '{'}

// scan walks the source once, tracking string state, comments and bracket
// depth. It reports the lexical-level diagnostics (unterminated strings,
// unbalanced brackets, tab/space mixing) and produces cleaned lines for the
// structural passes.
func scan(source string) *scanResult {
	res := &scanResult{}

	rawLines := strings.Split(source, "\n")

	inString := false
	stringQuote := byte(0)
	tripleString := false
	stringStartLine := 0
	backslashCont := false

	var stack []bracket

	for idx, raw := range rawLines {
		lineNo := idx + 1
		line := physLine{
			number:        lineNo,
			raw:           raw,
			startInString: inString,
			continuation:  !inString && (len(stack) > 0 || backslashCont),
		}
		backslashCont = false

		var clean strings.Builder
		i := 0
		for i < len(raw) {
			c := raw[i]

			if inString {
				if c == '\\' && i+1 < len(raw) {
					clean.WriteString("  ")
					i += 2
					continue
				}
				if c == stringQuote {
					if tripleString {
						if strings.HasPrefix(raw[i:], strings.Repeat(string(stringQuote), 3)) {
							inString = false
							clean.WriteString(strings.Repeat(string(stringQuote), 3))
							i += 3
							continue
						}
					} else {
						inString = false
						clean.WriteByte(stringQuote)
						i++
						continue
					}
				}
				clean.WriteByte(' ')
				i++
				continue
			}

			switch {
			case c == '#':
				// comment runs to end of line
				i = len(raw)

			case c == '\'' || c == '"':
				if strings.HasPrefix(raw[i:], strings.Repeat(string(c), 3)) {
					inString = true
					tripleString = true
					stringQuote = c
					stringStartLine = lineNo
					clean.WriteString(strings.Repeat(string(c), 3))
					i += 3
				} else {
					inString = true
					tripleString = false
					stringQuote = c
					stringStartLine = lineNo
					clean.WriteByte(c)
					i++
				}

			case c == '(' || c == '[' || c == '{':
				stack = append(stack, bracket{char: rune(c), line: lineNo})
				clean.WriteByte(c)
				i++

			case c == ')' || c == ']' || c == '}':
				if len(stack) == 0 || stack[len(stack)-1].char != bracketPairs[rune(c)] {
					res.diags = append(res.diags, Diagnostic{
						Type:     DiagUnbalancedBracket,
						Line:     lineNo,
						Message:  fmt.Sprintf("unmatched '%c'", c),
						Severity: SeverityError,
					})
				} else {
					stack = stack[:len(stack)-1]
				}
				clean.WriteByte(c)
				i++

			case c == '\\' && i == len(raw)-1:
				backslashCont = true
				i++

			default:
				clean.WriteByte(c)
				i++
			}
		}

		// A single-quoted string cannot span a physical line.
		if inString && !tripleString {
			res.diags = append(res.diags, Diagnostic{
				Type:     DiagUnterminatedString,
				Line:     stringStartLine,
				Message:  "string literal is not terminated before end of line",
				Severity: SeverityError,
			})
			inString = false
		}

		line.endInString = inString
		line.clean = strings.TrimRight(clean.String(), " \t")
		line.indent, line.mixedIndent = measureIndent(raw)
		line.blank = strings.TrimSpace(line.clean) == "" && !line.startInString
		line.openDepth = len(stack)

		if line.mixedIndent && !line.startInString && !line.blank {
			res.diags = append(res.diags, Diagnostic{
				Type:     DiagTabError,
				Line:     lineNo,
				Message:  "inconsistent use of tabs and spaces in indentation",
				Severity: SeverityWarning,
			})
		}

		res.lines = append(res.lines, line)
	}

	if inString && tripleString {
		res.diags = append(res.diags, Diagnostic{
			Type:     DiagUnterminatedString,
			Line:     stringStartLine,
			Message:  "triple-quoted string is never closed",
			Severity: SeverityError,
		})
	}

	for _, b := range stack {
		res.diags = append(res.diags, Diagnostic{
			Type:     DiagUnbalancedBracket,
			Line:     b.line,
			Message:  fmt.Sprintf("'%c' is never closed", b.char),
			Severity: SeverityError,
		})
	}

	return res
}

// measureIndent returns the visual indent width (tab = 4 columns) and
// whether tabs and spaces are mixed in the leading run.
func measureIndent(raw string) (int, bool) {
	width := 0
	sawSpace := false
	sawTab := false
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ' ':
			width++
			sawSpace = true
		case '\t':
			width += 4 - width%4
			sawTab = true
		default:
			return width, sawSpace && sawTab
		}
	}
	return width, sawSpace && sawTab
}
