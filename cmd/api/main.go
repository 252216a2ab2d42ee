package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"weddingrsvp/config"
	_ "weddingrsvp/docs"
	"weddingrsvp/internal/adapters/email"
	httpdelivery "weddingrsvp/internal/delivery/http"
	"weddingrsvp/internal/delivery/http/controllers"
	"weddingrsvp/internal/domain"
	"weddingrsvp/internal/metrics"
	"weddingrsvp/internal/repository/postgres"
	"weddingrsvp/internal/services"
)

// @title Wedding RSVP API
// @version 1.0
// @description Events of the wedding and the guests' attendance confirmations.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		return err
	}

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(db, logger); err != nil {
			return err
		}
	}

	m := metrics.NewDefault()

	var notifier domain.ResponseNotifier
	if cfg.Email.NotificationsEnabled() {
		mailer, err := email.NewMailer(email.MailerConfig{
			Provider:    cfg.Email.Provider,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			SES: email.SESConfig{
				Region:             cfg.Email.AWSRegion,
				AccessKeyID:        cfg.Email.AWSAccessKeyID,
				SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
				InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
			},
		}, logger)
		if err != nil {
			return err
		}
		notifier = services.NewEmailService(mailer, email.NewTemplateRenderer(), cfg.Email.NotifyTo, logger)
	}

	eventRepo := postgres.NewEventRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	eventService := services.NewEventService(eventRepo, cfg.StoreTimeout)
	responseService := services.NewResponseService(responseRepo, eventRepo, notifier, m, logger, cfg.StoreTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:    controllers.NewEventController(logger, eventService),
		Responses: controllers.NewResponseController(logger, responseService, cfg.ExportLocation),
		RSVP:      controllers.NewRSVPController(logger, responseService),
	}, m.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.Wrap(mux, logger, m, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
