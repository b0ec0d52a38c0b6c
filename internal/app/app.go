package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"feedbackclassifier/internal/classify"
	"feedbackclassifier/internal/config"
	"feedbackclassifier/internal/httpx"
	"feedbackclassifier/internal/integrations/zeroshot"
)

func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	var opts batchFlags

	cmd := &cobra.Command{
		Use:           "feedback-classifier",
		Short:         "Classify college feedback using zero-shot classification.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.categories, "categories", "", "Comma-separated list of categories to classify feedback into.")
	cmd.Flags().StringVar(&opts.input, "input", "feedback.csv", "Input CSV file")
	cmd.Flags().StringVar(&opts.output, "output", "classified_feedback.csv", "Output CSV file")
	cmd.Flags().StringVar(&opts.plot, "plot", "category_distribution.png", "Output plot file")

	cmd.AddCommand(newServeCmd())
	return cmd
}

// setup builds the shared model and optional glossary from config. The
// model is not loaded yet.
func setup(cfg config.Config) (*classify.Model, *classify.Glossary, error) {
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf(
		"Config loaded. Provider=%s Model=%s LabelColumn=%s GlossaryPath=%s ExternalHTTPTimeout=%s",
		cfg.ClassifierProvider,
		cfg.ClassifierModel,
		cfg.LabelColumn,
		cfg.GlossaryPath,
		appliedHTTPTimeout,
	)

	backend, err := zeroshot.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	var glossary *classify.Glossary
	if cfg.GlossaryPath != "" {
		glossary, err = classify.LoadGlossary(cfg.GlossaryPath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("glossary loaded terms=%d", len(glossary.Terms))
	}
	return classify.NewModel(backend), glossary, nil
}
