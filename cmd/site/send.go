package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/aoa-site/internal/config"
	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/service"
	"github.com/noah-isme/aoa-site/pkg/emailjs"
)

type sendOptions struct {
	name    string
	email   string
	message string
	dryRun  bool
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	send := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit one contact message through the mail relay",
		Example: `  aoa-site send --name "Jane Doe" --email jane@example.com --message "Hello"
  aoa-site send --dry-run --name "Jane Doe" --email jane@example.com --message "Hello"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger()

			relay, ids, err := sendRelay(send.dryRun, logger)
			if err != nil {
				return err
			}

			req := dto.ContactRequest{Name: send.name, Email: send.email, Message: send.message}.Normalize()
			if err := validator.New(validator.WithRequiredStructEnabled()).Struct(req); err != nil {
				return fmt.Errorf("invalid contact form: %w", err)
			}

			controller := service.NewContactFormController("cli", service.ContactDeps{
				Relay:       relay,
				Identifiers: ids,
				Notifier:    service.NewLogNotifier(logger),
				Logger:      logger,
			})
			controller.Open()

			result, err := controller.Submit(cmd.Context(), req.Fields())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Notification.Message)
			fmt.Fprintf(out, "reference: %s\n", result.ReferenceID)
			return result.Err
		},
	}

	cmd.Flags().StringVar(&send.name, "name", "", "sender name")
	cmd.Flags().StringVar(&send.email, "email", "", "sender email address")
	cmd.Flags().StringVar(&send.message, "message", "", "message body")
	cmd.Flags().BoolVar(&send.dryRun, "dry-run", false, "log the message instead of sending it")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func sendRelay(dryRun bool, logger zerolog.Logger) (service.ContactRelay, service.RelayIdentifiers, error) {
	if dryRun {
		cfg, err := config.Read()
		if err != nil {
			return nil, service.RelayIdentifiers{}, fmt.Errorf("failed to load configuration: %w", err)
		}
		return service.NewLogRelay(logger), relayIdentifiers(cfg), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, service.RelayIdentifiers{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := emailjs.New(emailjs.Config{
		Endpoint:    cfg.EmailJSEndpoint,
		AccessToken: cfg.EmailJSAccessToken,
		Timeout:     cfg.EmailJSTimeout,
	}, logger)
	if err != nil {
		return nil, service.RelayIdentifiers{}, fmt.Errorf("failed to create emailjs client: %w", err)
	}

	return service.NewEmailRelay(client), relayIdentifiers(cfg), nil
}

func relayIdentifiers(cfg config.Config) service.RelayIdentifiers {
	return service.RelayIdentifiers{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
	}
}
