package zeroshot

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"feedbackclassifier/internal/domain"
)

const maxFeedbackPromptChars = 4000

type rankedLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func buildRankingPrompts(labels []string, text string) (string, string) {
	var labelLines strings.Builder
	for _, label := range labels {
		labelLines.WriteString(fmt.Sprintf("- %s\n", label))
	}

	systemPrompt := fmt.Sprintf(`You are a zero-shot text classifier for free-text feedback.
Score how well the feedback belongs to each of these labels:
%s
Use every label exactly once, spelled exactly as listed, and no other labels.
Scores are between 0 and 1 and sum to 1. Even when no label fits well, still score them all.

Respond with JSON only (no markdown):
[{"label": "Facilities", "score": 0.82}, {"label": "Others", "score": 0.18}]`, labelLines.String())

	text = strings.TrimSpace(text)
	return systemPrompt, "Feedback:\n" + truncateText(text, maxFeedbackPromptChars)
}

// truncateText cuts text to at most limit bytes on a rune boundary.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

func parseRankingResponse(responseText string) (domain.ClassificationResult, error) {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var ranked []rankedLabel
	if err := json.Unmarshal([]byte(responseText), &ranked); err != nil {
		truncated := responseText
		if len(truncated) > 512 {
			truncated = truncated[:512] + fmt.Sprintf("... [truncated, total_length=%d]", len(responseText))
		}
		return nil, fmt.Errorf("parsing ranking response: %w (truncated response: %s)", err, truncated)
	}

	labels := make([]string, 0, len(ranked))
	scores := make([]float64, 0, len(ranked))
	for _, r := range ranked {
		labels = append(labels, strings.TrimSpace(r.Label))
		scores = append(scores, r.Score)
	}
	return rank(labels, scores)
}
