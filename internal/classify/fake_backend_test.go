package classify

import (
	"context"
	"errors"
	"strings"

	"feedbackclassifier/internal/domain"
)

// keywordBackend scores 0.9 for the first label whose lowercase name, or a
// keyword mapped to it, appears in the text. Otherwise it prefers the last label.
type keywordBackend struct {
	keywords  map[string]string
	failOn    string
	loadErr   error
	loads     int
	calls     int
	gotLabels [][]string
	override  domain.ClassificationResult
}

func (k *keywordBackend) Name() string { return "fake" }

func (k *keywordBackend) Load(ctx context.Context) error {
	k.loads++
	return k.loadErr
}

func (k *keywordBackend) Classify(ctx context.Context, text string, labels []string) (domain.ClassificationResult, domain.Usage, error) {
	k.calls++
	k.gotLabels = append(k.gotLabels, append([]string(nil), labels...))
	if k.failOn != "" && strings.Contains(text, k.failOn) {
		return nil, domain.Usage{}, errors.New("model exploded")
	}
	if k.override != nil {
		return k.override, domain.Usage{InputTokens: 1}, nil
	}
	lower := strings.ToLower(text)
	pick := len(labels) - 1
	for i, label := range labels {
		if strings.Contains(lower, strings.ToLower(label)) {
			pick = i
			break
		}
		for kw, target := range k.keywords {
			if target == label && strings.Contains(lower, kw) {
				pick = i
			}
		}
	}
	result := domain.ClassificationResult{{Label: labels[pick], Score: 0.9}}
	for i, label := range labels {
		if i != pick {
			result = append(result, domain.LabelScore{Label: label, Score: 0.1 / float64(len(labels))})
		}
	}
	return result, domain.Usage{InputTokens: 10, OutputTokens: 2}, nil
}
