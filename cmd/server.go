/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smartcowork/cowork-gin/internal/api"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/config"
	"github.com/smartcowork/cowork-gin/internal/database"
	"github.com/smartcowork/cowork-gin/internal/metrics"
	"github.com/smartcowork/cowork-gin/internal/repository"
	"github.com/smartcowork/cowork-gin/internal/roster"
	"github.com/smartcowork/cowork-gin/internal/service"
	"github.com/smartcowork/cowork-gin/internal/websocket"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Smart Cowork API server.
The server listens on the configured host and port and serves the
data-collection ledger, work approvals, documents and the AI calendar,
plus a realtime change feed over WebSocket and SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if cfg.Tracing.Enabled {
			if err := api.InitTracing(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint); err != nil {
				return fmt.Errorf("failed to initialize tracing: %w", err)
			}
		}

		db, err := database.ConnectWithRetry(cfg.Database, 5, 2*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		rosterProvider, err := roster.NewProvider(cfg.Roster.Path, logger)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		defer rosterProvider.Close()
		if cfg.Roster.Watch {
			if err := rosterProvider.Watch(); err != nil {
				logger.WithError(err).Warn("roster watch disabled")
			}
		}

		tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize token manager: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run()

		collector := metrics.NewCollector(db, 15*time.Second)
		collector.Start()
		defer collector.Stop()

		requestRepo := repository.NewRequestRepository(db)
		responseRepo := repository.NewResponseRepository(db)
		templateRepo := repository.NewTemplateRepository(db)
		approvalRepo := repository.NewApprovalRepository(db)
		documentRepo := repository.NewDocumentRepository(db)
		calendarRepo := repository.NewCalendarRepository(db)

		requestSvc := service.NewRequestService(db, requestRepo, responseRepo, rosterProvider, hub, logger)
		templateSvc := service.NewTemplateService(templateRepo, hub, logger)
		approvalSvc := service.NewApprovalService(approvalRepo, templateRepo, rosterProvider, hub, logger)
		documentSvc := service.NewDocumentService(documentRepo, hub, logger)
		calendarSvc := service.NewCalendarService(calendarRepo, hub, logger)

		controllers := &api.Controllers{
			Auth:      api.NewAuthController(rosterProvider, tokens),
			Employees: api.NewEmployeeController(rosterProvider),
			Requests:  api.NewRequestController(requestSvc),
			Templates: api.NewTemplateController(templateSvc),
			Approvals: api.NewApprovalController(approvalSvc),
			Documents: api.NewDocumentController(documentSvc),
			Calendar:  api.NewCalendarController(calendarSvc),
		}

		router := api.SetupRoutes(cfg, db, rosterProvider, tokens, hub, controllers)

		// Config changes apply the new log level without a restart.
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(newCfg *config.Config) {
				if level, err := logrus.ParseLevel(newCfg.Log.Level); err == nil {
					logger.SetLevel(level)
					logger.WithField("level", newCfg.Log.Level).Info("log level updated")
				}
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config watch disabled")
			}
			defer watcher.Stop()
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("server forced to shutdown")
		}

		if cfg.Tracing.Enabled {
			if err := api.ShutdownTracing(ctx); err != nil {
				logger.WithError(err).Warn("failed to shut down tracing")
			}
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringP("config", "c", "", "config file path")
}
