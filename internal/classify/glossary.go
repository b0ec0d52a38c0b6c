package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"feedbackclassifier/internal/domain"
)

// Glossary pins feedback containing a phrase to a category.
type Glossary struct {
	Terms []GlossaryTerm `yaml:"terms"`
}

type GlossaryTerm struct {
	Phrase   string `yaml:"phrase"`
	Category string `yaml:"category"`
}

func LoadGlossary(path string) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	var g Glossary
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse glossary yaml: %w", err)
	}
	return &g, nil
}

// resolve maps normalized phrases to categories present in cats, matching
// category names case-insensitively.
func (g *Glossary) resolve(cats domain.CategorySet) map[string]string {
	out := make(map[string]string)
	if g == nil {
		return out
	}
	byName := make(map[string]string, len(cats))
	for _, c := range cats {
		byName[normalizeTextToken(c)] = c
	}
	for _, term := range g.Terms {
		phrase := normalizeTextToken(term.Phrase)
		category, ok := byName[normalizeTextToken(term.Category)]
		if phrase == "" || !ok {
			continue
		}
		if _, exists := out[phrase]; !exists {
			out[phrase] = category
		}
	}
	return out
}

// match returns the category of the longest phrase contained in text.
func match(phrases map[string]string, text string) (string, string, bool) {
	text = normalizeTextToken(text)
	var bestPhrase, bestCategory string
	for phrase, category := range phrases {
		if !strings.Contains(text, phrase) {
			continue
		}
		if len(phrase) > len(bestPhrase) || (len(phrase) == len(bestPhrase) && phrase < bestPhrase) {
			bestPhrase, bestCategory = phrase, category
		}
	}
	return bestPhrase, bestCategory, bestPhrase != ""
}

func normalizeTextToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
