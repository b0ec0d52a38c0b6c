package zeroshot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func TestAnthropicClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["model"] != "claude-test" {
			t.Errorf("unexpected model: %v", body["model"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "[{\"label\":\"Library\",\"score\":0.6},{\"label\":\"Sports\",\"score\":0.4}]"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 90, "output_tokens": 20}
		}`))
	}))
	defer server.Close()

	a := NewAnthropic("sk-ant-test", "claude-test", server.Client(), option.WithBaseURL(server.URL))
	result, usage, err := a.Classify(context.Background(), "Need more study rooms", []string{"Sports", "Library"})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if top, _ := result.Top(); top.Label != "Library" {
		t.Fatalf("unexpected top label: %+v", top)
	}
	if usage.InputTokens != 90 || usage.OutputTokens != 20 {
		t.Fatalf("unexpected usage: %+v", usage)
	}
}

func TestAnthropicLoadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	a := NewAnthropic("bad-key", "claude-test", server.Client(), option.WithBaseURL(server.URL))
	if err := a.Load(context.Background()); err == nil {
		t.Fatal("expected Load to fail on 401")
	}
}
