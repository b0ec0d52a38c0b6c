package zeroshot

import (
	"context"
	"fmt"
	"sort"

	"feedbackclassifier/internal/config"
	"feedbackclassifier/internal/domain"
	"feedbackclassifier/internal/httpx"
)

// Backend is a pretrained zero-shot classification capability.
type Backend interface {
	Name() string
	// Load obtains the capability; it is called once per process.
	Load(ctx context.Context) error
	// Classify ranks labels for text, highest score first.
	Classify(ctx context.Context, text string, labels []string) (domain.ClassificationResult, domain.Usage, error)
}

func New(cfg config.Config) (Backend, error) {
	client := httpx.ExternalHTTPClient()
	switch cfg.ClassifierProvider {
	case config.ProviderHuggingFace:
		return &HuggingFace{
			Model:              cfg.ClassifierModel,
			BaseURL:            cfg.HuggingFaceBaseURL,
			Token:              cfg.HuggingFaceAPIToken,
			HypothesisTemplate: cfg.HypothesisTemplate,
			Client:             client,
		}, nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.ClassifierModel, client), nil
	case config.ProviderOpenAI:
		return &OpenAI{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.ClassifierModel,
			BaseURL: cfg.OpenAIBaseURL,
			Client:  client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown classifier provider '%s'", cfg.ClassifierProvider)
	}
}

func rank(labels []string, scores []float64) (domain.ClassificationResult, error) {
	if len(labels) != len(scores) {
		return nil, fmt.Errorf("got %d labels but %d scores", len(labels), len(scores))
	}
	result := make(domain.ClassificationResult, len(labels))
	for i := range labels {
		result[i] = domain.LabelScore{Label: labels[i], Score: scores[i]}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result, nil
}
