package zeroshot

import (
	"testing"

	"feedbackclassifier/internal/config"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{provider: config.ProviderHuggingFace, wantName: "huggingface:m"},
		{provider: config.ProviderAnthropic, wantName: "anthropic:m"},
		{provider: config.ProviderOpenAI, wantName: "openai:m"},
	}
	for _, tt := range tests {
		backend, err := New(config.Config{ClassifierProvider: tt.provider, ClassifierModel: "m"})
		if err != nil {
			t.Fatalf("New(%s) failed: %v", tt.provider, err)
		}
		if backend.Name() != tt.wantName {
			t.Fatalf("New(%s).Name() = %q, want %q", tt.provider, backend.Name(), tt.wantName)
		}
	}

	if _, err := New(config.Config{ClassifierProvider: "cohere"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRankKeepsInputOrderOnTies(t *testing.T) {
	result, err := rank([]string{"A", "B", "C"}, []float64{0.25, 0.5, 0.25})
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if result[0].Label != "B" || result[1].Label != "A" || result[2].Label != "C" {
		t.Fatalf("unexpected order: %+v", result)
	}
}
