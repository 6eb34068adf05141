package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/aoa-site/internal/config"
	"github.com/noah-isme/aoa-site/internal/database"
	"github.com/noah-isme/aoa-site/internal/handler"
	"github.com/noah-isme/aoa-site/internal/messaging"
	"github.com/noah-isme/aoa-site/internal/middleware"
	"github.com/noah-isme/aoa-site/internal/router"
	"github.com/noah-isme/aoa-site/internal/service"
	"github.com/noah-isme/aoa-site/pkg/emailjs"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Run the studio site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return serve(cmd.Context(), cfg, opts.logger())
		},
	}
}

func serve(parent context.Context, cfg config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := emailjs.New(emailjs.Config{
		Endpoint:    cfg.EmailJSEndpoint,
		AccessToken: cfg.EmailJSAccessToken,
		Timeout:     cfg.EmailJSTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create emailjs client: %w", err)
	}

	deps := service.ContactDeps{
		Relay: service.NewEmailRelay(client),
		Identifiers: service.RelayIdentifiers{
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
		},
		Logger: logger,
	}

	var registryOpts []service.SessionRegistryOption
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		deps.Guard = service.NewRedisInflightGuard(redisClient, guardTTL(cfg.EmailJSTimeout))
		registryOpts = append(registryOpts, service.WithSessionDirectory(service.NewRedisSessionDirectory(redisClient)))
	}

	notifiers := []service.Notifier{service.NewLogNotifier(logger)}
	if cfg.NATSURL != "" {
		conn, err := messaging.ConnectNATS(cfg.NATSURL, cfg.AppName, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer conn.Close()
		notifiers = append(notifiers, service.NewNATSNotifier(conn, cfg.NotificationsSubject, logger))
	}
	deps.Notifier = service.NewMultiNotifier(notifiers...)

	registry := service.NewSessionRegistry(deps, cfg.SessionTTL, logger, registryOpts...)
	registry.Start(ctx)

	validate := validator.New(validator.WithRequiredStructEnabled())

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.AllowOrigins,
		AccessLog:    !cfg.IsProduction(),
	})
	router.Register(app, cfg, router.Dependencies{
		PageHandler:    handler.NewPageHandler(cfg.AppName, validate, logger),
		ContactHandler: handler.NewContactHandler(validate, logger),
		Sessions: middleware.Sessions(registry, middleware.SessionConfig{
			Secure: cfg.IsProduction(),
			TTL:    cfg.SessionTTL,
		}),
		ContactLimiter: middleware.RateLimit("contact", cfg.ContactRateLimit, time.Minute),
		SessionCounter: registry,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTPAddress())
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("site started")

	select {
	case err := <-listenErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}

// guardTTL outlives the slowest relay call so a crashed replica cannot hold the key forever.
func guardTTL(relayTimeout time.Duration) time.Duration {
	if relayTimeout <= 0 {
		return time.Minute
	}
	return relayTimeout + 5*time.Second
}
