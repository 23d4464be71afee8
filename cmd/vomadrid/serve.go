package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/vomadrid/vomadrid/internal/api/v1"
	"github.com/vomadrid/vomadrid/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON query API",
	Long: `Serves the listings under /api/v1, with /healthz and Prometheus
metrics on /metrics. Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	api, err := v1.New(v1.ServerDeps{
		Catalog:            a.catalog,
		UpstreamConfigured: a.cfg.HasCredentials(),
		Version:            version,
	}, a.log)
	if err != nil {
		return err
	}

	runner := server.NewRunner(server.Config{
		Addr:            a.cfg.Addr(),
		ShutdownTimeout: server.DefaultShutdownTimeout,
	}, api, a.registry, a.log.Named("http"))

	if err := runner.Run(ctx); err != nil {
		a.log.Error("server stopped", zap.Error(err))
		return err
	}
	a.log.Info("server stopped")
	return nil
}
