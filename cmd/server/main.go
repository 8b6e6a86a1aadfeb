package main

import (
	"fmt"
	"log"
	"os"

	"ams-app/internal/config"
	"ams-app/internal/database"
	"ams-app/internal/handlers"
	"ams-app/internal/metrics"
	"ams-app/internal/server"
	"ams-app/internal/session"
	"ams-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		port       string
	)

	cmd := &cobra.Command{
		Use:   "ams-server",
		Short: "Internal audit management demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.ServerPort = port
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return run(cfg)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config (default $AMS_CONFIG)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides server_port")
	return cmd
}

func run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	journal, err := database.Open(cfg.DBDSN)
	if err != nil {
		return err
	}

	registry := session.NewRegistry(
		session.WithTTL(cfg.SessionTTL),
		session.WithStoreFactory(func() *store.Store {
			return store.New(store.WithMaxAttachment(cfg.MaxUploadBytes))
		}),
	)

	h := &handlers.Handler{
		Registry:  registry,
		Journal:   journal,
		Metrics:   metrics.New(prometheus.DefaultRegisterer),
		MaxUpload: cfg.MaxUploadBytes,
	}

	r := server.NewRouter(cfg, h, prometheus.DefaultGatherer)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
