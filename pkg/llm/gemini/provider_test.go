package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-code-debugger/pkg/llm"
)

func TestChat(t *testing.T) {
	var gotReq geminiChatRequest
	var gotKey string
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(geminiChatResponse{
			Candidates: []*geminiChatCandidate{
				{Content: &geminiChatContent{Parts: []*geminiChatParts{{Text: "fixed it"}}}},
			},
		})
	}))
	defer srv.Close()

	p := NewGeminiProvider("g-key", "gemini-1.5-flash").WithBaseURL(srv.URL)
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be terse"},
		{Role: "assistant", Content: "earlier"},
		{Role: "user", Content: "help"},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if reply != "fixed it" {
		t.Errorf("reply = %q", reply)
	}
	if gotKey != "g-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if !strings.Contains(gotPath, "gemini-1.5-flash:generateContent") {
		t.Errorf("path = %q", gotPath)
	}

	// system folds into user, assistant becomes model
	if gotReq.Contents[0].Role != "user" {
		t.Errorf("system mapped to %q, want user", gotReq.Contents[0].Role)
	}
	if gotReq.Contents[1].Role != "model" {
		t.Errorf("assistant mapped to %q, want model", gotReq.Contents[1].Role)
	}
}

func TestChatEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("g-key", "gemini-1.5-flash").WithBaseURL(srv.URL)
	_, err := p.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on empty candidates")
	}
}
