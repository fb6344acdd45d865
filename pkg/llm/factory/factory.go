package factory

import (
	"fmt"

	"ai-code-debugger/internal/config"
	"ai-code-debugger/pkg/llm"
	"ai-code-debugger/pkg/llm/gemini"
	"ai-code-debugger/pkg/llm/ollama"
	"ai-code-debugger/pkg/llm/openai"
)

// NewProvider builds the configured LLM backend. Hosted providers fail
// fast when their key is missing so the operator sees the problem at
// startup, not on the first request.
func NewProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.Ai.LLMProvider {
	case "openai":
		if cfg.Keys.OpenAI == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set. Add it to your .env file: OPENAI_API_KEY=your_api_key_here")
		}
		return openai.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.OpenAIBaseURL, cfg.Ai.LLMModel), nil

	case "gemini":
		if cfg.Keys.GoogleGemini == "" {
			return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY is not set. Add it to your .env file: GOOGLE_GEMINI_API_KEY=your_api_key_here")
		}
		return gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.LLMModel), nil

	case "ollama":
		baseURL := cfg.Ai.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Ai.LLMModel), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Ai.LLMProvider)
	}
}
