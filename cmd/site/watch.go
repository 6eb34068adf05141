package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/noah-isme/aoa-site/internal/config"
	"github.com/noah-isme/aoa-site/internal/messaging"
	"github.com/noah-isme/aoa-site/internal/models"
	"github.com/noah-isme/aoa-site/internal/service"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var queue string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print contact notifications published by running sites",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.NATSURL == "" {
				return fmt.Errorf("AOA_NATS_URL must be set to watch notifications")
			}

			logger := opts.logger()
			conn, err := messaging.ConnectNATS(cfg.NATSURL, cfg.AppName+" watcher", logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return service.ConsumeNotifications(ctx, conn, cfg.NotificationsSubject, queue, logger, func(n models.Notification) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s %s\n", n.At.Format("15:04:05"), n.Level, n.Message, n.ReferenceID)
			})
		},
	}

	cmd.Flags().StringVar(&queue, "queue", "aoa-watchers", "queue group shared by watchers")
	return cmd
}
