package prompt

import (
	"fmt"
	"strings"

	"ai-code-debugger/internal/constant"
	"ai-code-debugger/pkg/analyzer"
)

// SuggestionBuilder builds the per-finding prompt asking the model to
// explain and fix one diagnostic in the context of the full source.
type SuggestionBuilder struct {
	code string
	diag analyzer.Diagnostic
}

func NewSuggestionBuilder(code string, diag analyzer.Diagnostic) *SuggestionBuilder {
	return &SuggestionBuilder{code: code, diag: diag}
}

func (b *SuggestionBuilder) Build() string {
	var prompt strings.Builder

	writeCodeContext(&prompt, b.code)

	prompt.WriteString("<task>\n")
	prompt.WriteString(constant.ErrorSuggestionTaskPrompt)
	prompt.WriteString("\n</task>\n\n")

	prompt.WriteString("<error>\n")
	fmt.Fprintf(&prompt, "%s: %s at line %d\n", b.diag.Type, b.diag.Message, b.diag.Line)
	prompt.WriteString("</error>\n\n")

	prompt.WriteString("Now provide your explanation and fix:")
	return prompt.String()
}

// PerformanceBuilder builds the optimization prompt over the full list of
// heuristic findings.
type PerformanceBuilder struct {
	code   string
	issues []analyzer.PerformanceIssue
}

func NewPerformanceBuilder(code string, issues []analyzer.PerformanceIssue) *PerformanceBuilder {
	return &PerformanceBuilder{code: code, issues: issues}
}

func (b *PerformanceBuilder) Build() string {
	var prompt strings.Builder

	writeCodeContext(&prompt, b.code)

	prompt.WriteString("<task>\n")
	prompt.WriteString(constant.PerformanceTaskPrompt)
	prompt.WriteString("\n</task>\n\n")

	prompt.WriteString("<current_issues>\n")
	for _, issue := range b.issues {
		fmt.Fprintf(&prompt, "- %s: %s at line %d\n", issue.Type, issue.Message, issue.Line)
	}
	prompt.WriteString("</current_issues>\n\n")

	prompt.WriteString("Now provide your optimization suggestions:")
	return prompt.String()
}

// ChatBuilder builds the conversational prompt. The caller's current
// workspace code rides along as reference material; the guidelines vary
// with the selected analysis mode.
type ChatBuilder struct {
	code     string
	question string
	mode     string
}

func NewChatBuilder(code, question, mode string) *ChatBuilder {
	return &ChatBuilder{code: code, question: question, mode: mode}
}

func (b *ChatBuilder) Build() string {
	var prompt strings.Builder

	writeCodeContext(&prompt, b.code)

	prompt.WriteString("<task>\n")
	prompt.WriteString(constant.ChatTaskPrompt)
	prompt.WriteString("\n</task>\n\n")

	prompt.WriteString("<guidelines>\n")
	switch b.mode {
	case constant.AnalysisModePerformance:
		prompt.WriteString("Focus on runtime and memory behavior. Prefer algorithmic improvements over micro-optimizations.\n")
	case constant.AnalysisModeDetailed:
		prompt.WriteString("Walk through the relevant code paths step by step before giving the fix.\n")
	default:
		prompt.WriteString("Keep the answer short. Lead with the fix, add one sentence of explanation.\n")
	}
	prompt.WriteString("If the question is unrelated to the submitted code, answer it as a general Python question.\n")
	prompt.WriteString("</guidelines>\n\n")

	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n</user_question>\n\n")

	prompt.WriteString("Now provide your complete response:")
	return prompt.String()
}

func writeCodeContext(prompt *strings.Builder, code string) {
	if strings.TrimSpace(code) == "" {
		return
	}
	prompt.WriteString("<code_context>\n")
	prompt.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		prompt.WriteString("\n")
	}
	prompt.WriteString("</code_context>\n\n")
}
