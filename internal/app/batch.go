package app

import (
	"context"
	"log"

	"feedbackclassifier/internal/config"
	slackbot "feedbackclassifier/internal/integrations/slack"
	"feedbackclassifier/internal/pipeline"
)

type batchFlags struct {
	categories string
	input      string
	output     string
	plot       string
}

func runBatch(ctx context.Context, flags batchFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	model, glossary, err := setup(cfg)
	if err != nil {
		return err
	}

	var publisher pipeline.Publisher
	if cfg.SlackConfigured() {
		publisher = slackbot.NewPublisher(cfg.SlackBotToken, cfg.ReportChannelID)
		log.Printf("slack publishing enabled channel=%s", cfg.ReportChannelID)
	}

	result, err := pipeline.NewRunner(model, glossary, publisher).Run(ctx, pipeline.Options{
		InputPath:   flags.input,
		OutputPath:  flags.output,
		PlotPath:    flags.plot,
		Categories:  flags.categories,
		LabelColumn: cfg.LabelColumn,
	})
	if err != nil {
		return err
	}
	log.Printf("run finished outcome=%s rows=%d unknown=%d", result.Outcome, len(result.Predictions), result.Failures())
	return nil
}
