package prompt

import (
	"strings"
	"testing"

	"ai-code-debugger/internal/constant"
	"ai-code-debugger/pkg/analyzer"
)

func TestSuggestionBuilder(t *testing.T) {
	p := NewSuggestionBuilder("x = (1\n", analyzer.Diagnostic{
		Type:     analyzer.DiagUnbalancedBracket,
		Line:     1,
		Message:  "'(' is never closed",
		Severity: analyzer.SeverityError,
	}).Build()

	for _, want := range []string{
		"<code_context>", "x = (1", "<error>",
		"UnbalancedBracket: '(' is never closed at line 1",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q\n%s", want, p)
		}
	}
}

func TestPerformanceBuilder(t *testing.T) {
	p := NewPerformanceBuilder("for i in x:\n    y.append(i)\n", []analyzer.PerformanceIssue{
		{Type: analyzer.IssueAppendInLoop, Line: 2, Message: "List append in loop"},
	}).Build()

	if !strings.Contains(p, "<current_issues>") {
		t.Error("prompt missing issues section")
	}
	if !strings.Contains(p, "List append in loop at line 2") {
		t.Errorf("prompt missing issue line\n%s", p)
	}
}

func TestChatBuilder(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		wantText string
	}{
		{name: "basic mode", mode: constant.AnalysisModeBasic, wantText: "Keep the answer short"},
		{name: "detailed mode", mode: constant.AnalysisModeDetailed, wantText: "step by step"},
		{name: "performance mode", mode: constant.AnalysisModePerformance, wantText: "runtime and memory"},
		{name: "unknown mode falls back to basic", mode: "??", wantText: "Keep the answer short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewChatBuilder("x = 1\n", "why is this slow?", tt.mode).Build()
			if !strings.Contains(p, tt.wantText) {
				t.Errorf("prompt missing %q", tt.wantText)
			}
			if !strings.Contains(p, "<user_question>\nwhy is this slow?") {
				t.Error("prompt missing user question")
			}
		})
	}
}

func TestChatBuilderWithoutCode(t *testing.T) {
	p := NewChatBuilder("   ", "what is a decorator?", constant.AnalysisModeBasic).Build()
	if strings.Contains(p, "<code_context>") {
		t.Error("empty workspace should not produce a code context section")
	}
}
