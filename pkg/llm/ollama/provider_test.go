package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-code-debugger/pkg/llm"
)

func TestChat(t *testing.T) {
	var gotReq ollamaChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   gotReq.Model,
			Message: ollamaMessage{Role: "assistant", Content: "looks fine"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.1:8b")
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "model", Content: "previous"},
		{Role: "user", Content: "check this"},
	}, llm.WithMaxTokens(128))
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if reply != "looks fine" {
		t.Errorf("reply = %q", reply)
	}
	if gotReq.Model != "llama3.1:8b" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("stream should be disabled")
	}
	if gotReq.Messages[0].Role != "assistant" {
		t.Errorf("role = %q, want assistant", gotReq.Messages[0].Role)
	}
	if gotReq.Options == nil || gotReq.Options.NumPredict != 128 {
		t.Errorf("options = %+v, want num_predict 128", gotReq.Options)
	}
}

func TestChatServerDown(t *testing.T) {
	p := NewOllamaProvider("http://127.0.0.1:1", "llama3.1:8b")
	_, err := p.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected connection error")
	}
}
