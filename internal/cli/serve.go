package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SreeTarak2/datavisuals/internal/chart"
	"github.com/SreeTarak2/datavisuals/internal/server"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			policy, err := cfg.Policy()
			if err != nil {
				return err
			}

			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := newLogger(verbose)

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			srv := server.New(server.Config{
				Store:       s,
				Builder:     chart.NewBuilder(cfg.Resolver(), policy, logger),
				Port:        cfg.Port,
				DatasetsDir: cfg.DatasetsDir,
				Watch:       cfg.Watch,
				Logger:      logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "HTTP port (overrides config)")
	cmd.Flags().Bool("watch", false, "watch the datasets directory and reload changed CSVs")
	return cmd
}
