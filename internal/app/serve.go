package app

import (
	"github.com/spf13/cobra"

	"feedbackclassifier/internal/config"
	"feedbackclassifier/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload-and-classify web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}
			model, glossary, err := setup(cfg)
			if err != nil {
				return err
			}
			if err := model.Ensure(cmd.Context()); err != nil {
				return err
			}
			server := web.NewServer(model, glossary, web.Options{
				ResultsDir:     cfg.ResultsDir,
				LabelColumn:    cfg.LabelColumn,
				MaxUploadBytes: cfg.MaxUploadBytes,
			})
			return server.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default from listen_addr)")
	return cmd
}
