package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gkahiu/fltsd/pkg/config"
	"github.com/gkahiu/fltsd/pkg/logging"
	"github.com/gkahiu/fltsd/pkg/registry"
	"github.com/gkahiu/fltsd/pkg/server"
	"github.com/gkahiu/fltsd/pkg/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the FLTS service server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the fltsd configuration file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address, overrides the configuration")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildRegistry loads the template manifest, or materializes the built-in
// sample templates when no manifest is configured.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.TemplatesFile != "" {
		return registry.LoadManifest(cfg.TemplatesFile)
	}
	dir := cfg.DocumentDir
	if dir == "" {
		dir = os.TempDir()
	}
	return registry.Sample(dir)
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	reg, err := buildRegistry(cfg)
	if err != nil {
		return fmt.Errorf("failed to build template registry: %w", err)
	}
	log.Info("template registry loaded", "templates", reg.String())

	svc, err := service.New(reg,
		service.WithLogger(log),
		service.WithDocumentDir(cfg.DocumentDir),
	)
	if err != nil {
		return fmt.Errorf("failed to build FLTS service: %w", err)
	}

	srv := server.New(cfg.Listen, server.WithLogger(log))
	if err := srv.Registry().Register(svc.Name(), svc); err != nil {
		return fmt.Errorf("failed to register FLTS service: %w", err)
	}
	log.Info("FLTS service registered", "version", svc.Version(), "operations", svc.SupportedRequests())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
