package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"NewsPoster/internal/config"
	"NewsPoster/internal/domain"
)

func newTestClient(endpoint string) *ChatGPTClient {
	return NewChatGPTClient(config.ChatGPTConfig{
		Endpoint: endpoint,
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
	})
}

func TestRewriteSendsPromptAndReturnsContent(t *testing.T) {
	t.Parallel()

	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  A crisp summary.  "}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.Rewrite(context.Background(), domain.Article{
		Title:       "Markets rally",
		Description: "Stocks rose broadly.",
		Source:      "Reuters",
	})
	if err != nil {
		t.Fatalf("Rewrite error: %v", err)
	}

	if got != "A crisp summary." {
		t.Errorf("content = %q", got)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(captured.Messages))
	}
	user := captured.Messages[1].Content
	for _, part := range []string{"Markets rally", "Stocks rose broadly.", "Reuters", "250 characters"} {
		if !strings.Contains(user, part) {
			t.Errorf("user prompt missing %q:\n%s", part, user)
		}
	}
}

func TestRewriteAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Rewrite(context.Background(), domain.Article{Title: "x"}); err == nil {
		t.Fatal("expected error on API failure")
	}
}

func TestRewriteEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Rewrite(context.Background(), domain.Article{Title: "x"}); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestRewriteMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewChatGPTClient(config.ChatGPTConfig{})
	if _, err := client.Rewrite(context.Background(), domain.Article{Title: "x"}); err == nil {
		t.Fatal("expected error without credentials")
	}
}
