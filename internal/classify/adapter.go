package classify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"feedbackclassifier/internal/domain"
)

const glossaryConfidence = 0.99

// Progress is called after each row completes.
type Progress func(done, total int, pred domain.Prediction)

type Adapter struct {
	model    *Model
	glossary *Glossary
}

func NewAdapter(model *Model, glossary *Glossary) *Adapter {
	return &Adapter{model: model, glossary: glossary}
}

// ClassifyAll classifies texts one at a time in input order. A failed row
// yields a failed Prediction and never stops the loop.
func (a *Adapter) ClassifyAll(ctx context.Context, texts []string, cats domain.CategorySet, progress Progress) ([]domain.Prediction, domain.Usage) {
	phrases := a.glossary.resolve(cats)
	preds := make([]domain.Prediction, len(texts))
	var total domain.Usage
	for i, text := range texts {
		pred, usage := a.classifyOne(ctx, text, cats, phrases)
		total.Add(usage)
		preds[i] = pred
		if progress != nil {
			progress(i+1, len(texts), pred)
		}
	}
	return preds, total
}

// Classify is ClassifyAll for a single text.
func (a *Adapter) Classify(ctx context.Context, text string, cats domain.CategorySet) domain.Prediction {
	pred, _ := a.classifyOne(ctx, text, cats, a.glossary.resolve(cats))
	return pred
}

func (a *Adapter) classifyOne(ctx context.Context, text string, cats domain.CategorySet, phrases map[string]string) (domain.Prediction, domain.Usage) {
	if phrase, category, ok := match(phrases, text); ok {
		log.Printf("glossary override phrase=%q category=%s", phrase, category)
		return domain.Prediction{Label: category, Confidence: glossaryConfidence}, domain.Usage{}
	}

	pred, usage := a.predict(ctx, text, cats)
	if pred.Err != nil {
		log.Printf("warning: could not classify feedback: %q error: %v", text, pred.Err)
	}
	return pred, usage
}

func (a *Adapter) predict(ctx context.Context, text string, cats domain.CategorySet) (domain.Prediction, domain.Usage) {
	if strings.TrimSpace(text) == "" {
		return failed("empty feedback text"), domain.Usage{}
	}

	result, usage, err := a.model.classify(ctx, text, cats)
	if err != nil {
		return domain.Prediction{Err: fmt.Errorf("%w: %v", domain.ErrRowClassification, err)}, usage
	}
	top, ok := result.Top()
	if !ok {
		return failed("classifier returned no labels"), usage
	}
	if !cats.Contains(top.Label) {
		return failed(fmt.Sprintf("classifier returned label %q outside the category set", top.Label)), usage
	}
	return domain.Prediction{Label: top.Label, Confidence: top.Score}, usage
}

func failed(reason string) domain.Prediction {
	return domain.Prediction{Err: fmt.Errorf("%w: %s", domain.ErrRowClassification, reason)}
}
