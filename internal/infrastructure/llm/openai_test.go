package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FeedbackInsights/internal/config"
	"FeedbackInsights/internal/ports"
)

func clientFor(endpoint string) *OpenAIClient {
	return NewOpenAIClient(config.AIConfig{
		Endpoint:          endpoint,
		Model:             "gpt-4o-mini",
		APIKey:            "test-key",
		RequestsPerMinute: 600,
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"summary":"ok"}`}},
			},
		})
	}))
	defer srv.Close()

	client := clientFor(srv.URL)
	out, err := client.Summarize(context.Background(), "analyze this", ports.SummarizeOptions{MaxTokens: 512})
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if out != `{"summary":"ok"}` {
		t.Fatalf("unexpected completion %q", out)
	}

	if captured.Model != "gpt-4o-mini" || captured.MaxTokens != 512 {
		t.Fatalf("request payload wrong: %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "analyze this" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[0].Content, "JSON") {
		t.Fatalf("default system prompt missing, got %q", captured.Messages[0].Content)
	}
}

func TestSummarizeUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := clientFor(srv.URL).Summarize(context.Background(), "prompt", ports.SummarizeOptions{})
	if err == nil {
		t.Fatalf("expected error on 429")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error must carry the upstream body, got %v", err)
	}
}

func TestSummarizeEmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	if _, err := clientFor(srv.URL).Summarize(context.Background(), "prompt", ports.SummarizeOptions{}); err == nil {
		t.Fatalf("expected error on empty choices")
	}
}

func TestSummarizeMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewOpenAIClient(config.AIConfig{Endpoint: "http://localhost"})
	if _, err := client.Summarize(context.Background(), "prompt", ports.SummarizeOptions{}); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}
