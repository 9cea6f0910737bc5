package modelcall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionBody(content string) []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return b
}

func TestCompleteSendsPromptAndAuth(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "haven-small" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want one user message", req.Messages)
		}
		if len(req.Messages) == 1 {
			gotBody = req.Messages[0].Content
		}
		_, _ = w.Write(completionBody("  the output  "))
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL, APIKey: "sk-test", Model: "haven-small"})
	out, err := c.Complete(context.Background(), "assembled prompt text")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "the output" {
		t.Errorf("out = %q, want trimmed content", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody != "assembled prompt text" {
		t.Errorf("prompt body = %q", gotBody)
	}
}

func TestCompleteNoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization header set without an API key")
		}
		_, _ = w.Write(completionBody("ok output"))
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL, Model: "haven-small"})
	if _, err := c.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL, Model: "haven-small"})
	_, err := c.Complete(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want HTTP 503 error", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL, Model: "haven-small"})
	if _, err := c.Complete(context.Background(), "p"); err == nil {
		t.Error("empty choices did not error")
	}
}

func TestCompleteHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		_, _ = w.Write(completionBody("too late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(Config{APIURL: srv.URL, Model: "haven-small"})
	if _, err := c.Complete(ctx, "p"); err == nil {
		t.Error("cancelled context did not error")
	}
}
