package zeroshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"feedbackclassifier/internal/domain"
)

// HuggingFace calls the Inference API zero-shot-classification task.
type HuggingFace struct {
	Model              string
	BaseURL            string
	Token              string
	HypothesisTemplate string
	Client             *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    *hfOptions   `json:"options,omitempty"`
}

type hfParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	MultiLabel         bool     `json:"multi_label"`
	HypothesisTemplate string   `json:"hypothesis_template,omitempty"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

type hfLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error         json.RawMessage `json:"error"`
	EstimatedTime float64         `json:"estimated_time"`
}

func (h *HuggingFace) Name() string {
	return "huggingface:" + h.Model
}

// Load sends a warm-up request that waits for the hosted model to come up.
func (h *HuggingFace) Load(ctx context.Context) error {
	log.Printf("zeroshot huggingface loading model=%s", h.Model)
	_, err := h.call(ctx, "Model warm-up request.", []string{"ready", "not ready"}, true)
	if err != nil {
		return fmt.Errorf("huggingface model %s: %w", h.Model, err)
	}
	log.Printf("zeroshot huggingface model=%s ready", h.Model)
	return nil
}

func (h *HuggingFace) Classify(ctx context.Context, text string, labels []string) (domain.ClassificationResult, domain.Usage, error) {
	result, err := h.call(ctx, text, labels, false)
	return result, domain.Usage{}, err
}

func (h *HuggingFace) call(ctx context.Context, text string, labels []string, waitForModel bool) (domain.ClassificationResult, error) {
	reqBody := hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			CandidateLabels:    labels,
			MultiLabel:         false,
			HypothesisTemplate: h.HypothesisTemplate,
		},
	}
	if waitForModel {
		reqBody.Options = &hfOptions{WaitForModel: true}
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := strings.TrimRight(h.BaseURL, "/") + "/" + h.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}
	if waitForModel {
		req.Header.Set("X-Wait-For-Model", "true")
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Hugging Face API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hugging Face API status %d: %s", resp.StatusCode, hfErrorMessage(respBody))
	}
	return parseHFResponse(respBody)
}

// parseHFResponse accepts both the legacy {"labels","scores"} object and the
// newer list of {"label","score"} pairs.
func parseHFResponse(body []byte) (domain.ClassificationResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pairs []hfLabelScore
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, fmt.Errorf("parsing Hugging Face response: %w", err)
		}
		labels := make([]string, len(pairs))
		scores := make([]float64, len(pairs))
		for i, p := range pairs {
			labels[i], scores[i] = p.Label, p.Score
		}
		return rank(labels, scores)
	}

	var parsed hfResponse
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, fmt.Errorf("parsing Hugging Face response: %w", err)
	}
	if len(parsed.Labels) == 0 {
		return nil, fmt.Errorf("no labels in Hugging Face response: %s", hfErrorMessage(trimmed))
	}
	return rank(parsed.Labels, parsed.Scores)
}

func hfErrorMessage(body []byte) string {
	var e hfError
	if err := json.Unmarshal(body, &e); err == nil && len(e.Error) > 0 {
		var msg string
		if json.Unmarshal(e.Error, &msg) != nil {
			msg = string(e.Error)
		}
		if e.EstimatedTime > 0 {
			return fmt.Sprintf("%s (estimated_time=%.0fs)", msg, e.EstimatedTime)
		}
		return msg
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 256 {
		text = text[:256] + "..."
	}
	return text
}
