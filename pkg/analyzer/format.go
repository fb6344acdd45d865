package analyzer

import "strings"

// Format performs conservative whitespace cleanup: leading tabs become four
// spaces, trailing whitespace is stripped, runs of blank lines collapse to
// two, and the result always ends with a newline. Lines that sit inside a
// multi-line string are copied through untouched.
func Format(source string) string {
	res := scan(source)

	var out []string
	blankRun := 0

	for _, l := range res.lines {
		if l.startInString || l.endInString {
			out = append(out, l.raw)
			blankRun = 0
			continue
		}

		line := expandLeadingTabs(l.raw)
		line = strings.TrimRight(line, " \t")

		if strings.TrimSpace(line) == "" {
			blankRun++
			if blankRun > 2 {
				continue
			}
			out = append(out, "")
			continue
		}
		blankRun = 0
		out = append(out, line)
	}

	// drop trailing blank lines, keep exactly one final newline
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func expandLeadingTabs(raw string) string {
	i := 0
	width := 0
	for i < len(raw) {
		if raw[i] == ' ' {
			width++
		} else if raw[i] == '\t' {
			width += 4 - width%4
		} else {
			break
		}
		i++
	}
	return strings.Repeat(" ", width) + raw[i:]
}
