package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skonate/griot/internal/model"
)

func TestAnthropicProvider_Generate(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}

		resp := anthropicResponse{Model: got.Model}
		resp.Content = []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{{Type: "text", Text: "Le balafon est un instrument traditionnel."}}
		resp.Usage.InputTokens = 100
		resp.Usage.OutputTokens = 20
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(model.LLMConfig{
		Model:     "claude-3-5-haiku-20241022",
		APIKey:    "test-key",
		BaseURL:   server.URL,
		MaxTokens: 500,
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Generate(context.Background(), GenerateRequest{Prompt: "Qu'est-ce qu'un balafon ?"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Text, "balafon") {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.TokensUsed != 120 {
		t.Errorf("tokens = %d, want 120", resp.TokensUsed)
	}
	if got.MaxTokens != 500 {
		t.Errorf("max_tokens = %d, want 500", got.MaxTokens)
	}
	if !strings.Contains(got.System, "culture burkinabè") {
		t.Errorf("system prompt = %q", got.System)
	}
}

func TestAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(model.LLMConfig{}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestAnthropicProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		var apiErr anthropicError
		apiErr.Error.Type = "authentication_error"
		apiErr.Error.Message = "invalid x-api-key"
		json.NewEncoder(w).Encode(apiErr)
	}))
	defer server.Close()

	p, _ := NewAnthropicProvider(model.LLMConfig{APIKey: "bad", BaseURL: server.URL})

	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "question"})
	if err == nil || !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Errorf("error must carry the API message, got %v", err)
	}
}
