package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const sendPath = "/api/v1.0/email/send"

// ErrRejected is returned when the EmailJS API answers with a non-200 status.
var ErrRejected = errors.New("emailjs rejected the request")

// Config contains the transport settings for the EmailJS REST API.
type Config struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client sends templated emails through EmailJS.
type Client struct {
	endpoint    string
	accessToken string
	timeout     time.Duration
	http        *http.Client
	logger      zerolog.Logger
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// New constructs an EmailJS client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("emailjs endpoint must be provided")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		timeout:     cfg.Timeout,
		http:        httpClient,
		logger:      logger.With().Str("component", "emailjs").Logger(),
	}, nil
}

// Send delivers one email rendered from templateID with params.
// A nil error means EmailJS accepted the message.
func (c *Client) Send(ctx context.Context, serviceID, templateID string, params map[string]string, publicKey string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         publicKey,
		AccessToken:    c.accessToken,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	c.logger.Debug().Str("template_id", templateID).Msg("email accepted by emailjs")

	return nil
}
