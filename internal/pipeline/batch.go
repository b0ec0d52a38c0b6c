package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"feedbackclassifier/internal/categories"
	"feedbackclassifier/internal/classify"
	"feedbackclassifier/internal/domain"
	"feedbackclassifier/internal/feedback"
	"feedbackclassifier/internal/report"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
)

type Options struct {
	InputPath   string
	OutputPath  string
	PlotPath    string
	Categories  string
	LabelColumn string
}

type Result struct {
	Outcome      Outcome
	Categories   domain.CategorySet
	Predictions  []domain.Prediction
	Distribution domain.CategoryDistribution
	Usage        domain.Usage
	CSVErr       error
	PlotErr      error
}

func (r *Result) Failures() int {
	n := 0
	for _, p := range r.Predictions {
		if p.Failed() {
			n++
		}
	}
	return n
}

// Publisher receives artifacts that were written successfully.
type Publisher interface {
	UploadFile(ctx context.Context, path, title, comment string) error
}

type Runner struct {
	model     *classify.Model
	adapter   *classify.Adapter
	publisher Publisher
}

func NewRunner(model *classify.Model, glossary *classify.Glossary, publisher Publisher) *Runner {
	return &Runner{
		model:     model,
		adapter:   classify.NewAdapter(model, glossary),
		publisher: publisher,
	}
}

// Run is a single forward pass. Only load and model errors are returned;
// row and output failures are recorded on the Result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	cats, usedDefault := categories.ResolveWithSource(opts.Categories)
	if usedDefault && strings.TrimSpace(opts.Categories) != "" {
		log.Printf("No valid categories provided. Using default categories.")
	}
	log.Printf("Using categories: %s", strings.Join(cats, ", "))

	log.Printf("Loading feedback from %s ...", opts.InputPath)
	table, err := feedback.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded rows=%d columns=%d", len(table.Records), len(table.Header))

	if err := r.model.Ensure(ctx); err != nil {
		return nil, err
	}

	log.Printf("Classifying feedback entries...")
	preds, usage := r.adapter.ClassifyAll(ctx, table.Texts(), cats, logProgress)
	result := &Result{
		Outcome:      OutcomeSuccess,
		Categories:   cats,
		Predictions:  preds,
		Distribution: report.Distribution(preds, cats),
		Usage:        usage,
	}
	log.Printf("classify done rows=%d unknown=%d tokens=%d", len(preds), result.Failures(), usage.TotalTokens())

	labelColumn := opts.LabelColumn
	if labelColumn == "" {
		labelColumn = domain.DefaultLabelColumn
	}
	if err := report.WriteCSV(opts.OutputPath, table, preds, labelColumn); err != nil {
		result.CSVErr = err
		log.Printf("Error saving output CSV: %v", err)
	} else {
		log.Printf("Classified feedback saved to %s", opts.OutputPath)
	}

	if err := report.SaveChart(opts.PlotPath, result.Distribution); err != nil {
		result.PlotErr = err
		log.Printf("Error generating plot: %v", err)
	} else {
		log.Printf("Category distribution plot saved to %s", opts.PlotPath)
	}

	if result.CSVErr != nil || result.PlotErr != nil {
		result.Outcome = OutcomePartial
	}
	r.publish(ctx, opts, result)
	return result, nil
}

func (r *Runner) publish(ctx context.Context, opts Options, result *Result) {
	if r.publisher == nil {
		return
	}
	comment := fmt.Sprintf("Classified %d feedback entries into %s (unknown: %d)", len(result.Predictions), strings.Join(result.Categories, ", "), result.Failures())
	if result.CSVErr == nil {
		if err := r.publisher.UploadFile(ctx, opts.OutputPath, "Classified feedback", comment); err != nil {
			log.Printf("Error uploading classified CSV: %v", err)
		}
	}
	if result.PlotErr == nil {
		if err := r.publisher.UploadFile(ctx, opts.PlotPath, "Feedback category distribution", summarize(result.Distribution)); err != nil {
			log.Printf("Error uploading plot: %v", err)
		}
	}
}

func summarize(dist domain.CategoryDistribution) string {
	parts := make([]string, len(dist))
	for i, c := range dist {
		parts[i] = fmt.Sprintf("%s: %d", c.Category, c.Count)
	}
	return strings.Join(parts, ", ")
}

func logProgress(done, total int, pred domain.Prediction) {
	log.Printf("Classifying %d/%d category=%s", done, total, pred.Category())
}
