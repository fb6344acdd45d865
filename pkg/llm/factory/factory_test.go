package factory

import (
	"testing"

	"ai-code-debugger/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		keys     config.APIKeys
		wantErr  bool
	}{
		{name: "openai with key", provider: "openai", keys: config.APIKeys{OpenAI: "k"}, wantErr: false},
		{name: "openai missing key", provider: "openai", wantErr: true},
		{name: "gemini with key", provider: "gemini", keys: config.APIKeys{GoogleGemini: "k"}, wantErr: false},
		{name: "gemini missing key", provider: "gemini", wantErr: true},
		{name: "ollama needs no key", provider: "ollama", wantErr: false},
		{name: "unknown provider", provider: "claude-via-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Keys: tt.keys,
				Ai:   config.AIConfig{LLMProvider: tt.provider, LLMModel: "m"},
			}
			p, err := NewProvider(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p == nil {
				t.Fatal("NewProvider() returned nil provider")
			}
		})
	}
}
