package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// Analysis modes selectable from the UI
	AnalysisModeBasic       = "basic"
	AnalysisModeDetailed    = "detailed"
	AnalysisModePerformance = "performance"

	DebuggerSystemPrompt = `You are an expert Python developer helping users debug their code.

Rules:
- Base every statement on the code and diagnostics provided
- Point to concrete lines when you reference a problem
- Show corrected code in fenced blocks
- Keep explanations short and practical, no filler
- If the provided context does not contain enough information, say so`

	DebuggerSystemAckPrompt = `Understood. I'll:
- Ground every answer in the submitted code and diagnostics
- Reference concrete line numbers
- Show fixes as fenced code blocks
- Stay short and practical

Ready.`

	ErrorSuggestionTaskPrompt = `Analyze the reported Python error and provide:
1. A clear explanation of what's causing it
2. A specific fix, with corrected code
3. One practice to avoid this class of issue in the future`

	PerformanceTaskPrompt = `Analyze the Python code for performance:
1. Specific optimization suggestions for the listed issues
2. An example of the optimized code
3. A short explanation of why the optimization helps`

	ChatTaskPrompt = `Answer the user's question about their code:
1. Address the specific question first
2. Explain any relevant concept briefly
3. Provide a practical fix or example when applicable`

	// Fallback shown when the hosted model call fails for a single suggestion.
	// The analysis itself still succeeds; only the AI enrichment is missing.
	SuggestionUnavailableText = "AI suggestion unavailable for this finding. Check the server logs and your API key, then re-run the analysis."

	// Session titles are derived from the first user message, clipped here.
	SessionTitleMaxLen = 60
)
