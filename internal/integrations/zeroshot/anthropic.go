package zeroshot

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"feedbackclassifier/internal/domain"
)

// Anthropic asks a Claude model to score the candidate labels.
type Anthropic struct {
	Model  string
	client anthropic.Client
}

func NewAnthropic(apiKey, model string, httpClient *http.Client, opts ...option.RequestOption) *Anthropic {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}, opts...)
	return &Anthropic{
		Model:  model,
		client: anthropic.NewClient(opts...),
	}
}

func (a *Anthropic) Name() string {
	return "anthropic:" + a.Model
}

// Load sends a one-token probe so a bad key or model fails at startup.
func (a *Anthropic) Load(ctx context.Context) error {
	log.Printf("zeroshot anthropic loading model=%s", a.Model)
	_, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("anthropic model %s: %w", a.Model, err)
	}
	return nil
}

func (a *Anthropic) Classify(ctx context.Context, text string, labels []string) (domain.ClassificationResult, domain.Usage, error) {
	systemPrompt, userPrompt := buildRankingPrompts(labels, text)

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, domain.Usage{}, fmt.Errorf("Anthropic API error: %w", err)
	}
	usage := domain.Usage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			result, err := parseRankingResponse(block.Text)
			return result, usage, err
		}
	}
	return nil, usage, fmt.Errorf("no text content in Anthropic response")
}
