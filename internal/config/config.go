package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRelayIdentifiers is returned when the EmailJS identifiers are not configured.
var ErrMissingRelayIdentifiers = errors.New("emailjs service id, template id and public key must be provided")

// Config holds runtime configuration values for the studio site.
type Config struct {
	AppName              string
	AppEnv               string
	AppPort              string
	AllowOrigins         string
	EmailJSEndpoint      string
	EmailJSServiceID     string
	EmailJSTemplateID    string
	EmailJSPublicKey     string
	EmailJSAccessToken   string
	EmailJSTimeout       time.Duration
	RedisURL             string
	NATSURL              string
	NotificationsSubject string
	SessionTTL           time.Duration
	ContactRateLimit     int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the site runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration values from environment variables and optional .env
// file and requires the mail relay identifiers.
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports missing mail relay identifiers.
func (c Config) Validate() error {
	if c.EmailJSServiceID == "" || c.EmailJSTemplateID == "" || c.EmailJSPublicKey == "" {
		return ErrMissingRelayIdentifiers
	}
	return nil
}

// Read loads configuration without validating it. Dry runs use it because they
// never reach the mail relay.
func Read() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AOA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Alpha Omega Artworks")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("emailjs.endpoint", "https://api.emailjs.com")
	v.SetDefault("emailjs.timeout", "15s")
	v.SetDefault("notifications.subject", "aoa.contact.notifications")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("contact.rate_limit", 5)

	timeout, err := parseDuration(v.GetString("emailjs.timeout"), "15s")
	if err != nil {
		return Config{}, fmt.Errorf("invalid emailjs timeout: %w", err)
	}

	sessionTTL, err := parseDuration(v.GetString("session.ttl"), "30m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	cfg := Config{
		AppName:              v.GetString("app.name"),
		AppEnv:               v.GetString("app.env"),
		AppPort:              v.GetString("app.port"),
		AllowOrigins:         v.GetString("cors.allow_origins"),
		EmailJSEndpoint:      strings.TrimRight(v.GetString("emailjs.endpoint"), "/"),
		EmailJSServiceID:     v.GetString("emailjs.service_id"),
		EmailJSTemplateID:    v.GetString("emailjs.template_id"),
		EmailJSPublicKey:     v.GetString("emailjs.public_key"),
		EmailJSAccessToken:   v.GetString("emailjs.access_token"),
		EmailJSTimeout:       timeout,
		RedisURL:             v.GetString("redis.url"),
		NATSURL:              v.GetString("nats.url"),
		NotificationsSubject: v.GetString("notifications.subject"),
		SessionTTL:           sessionTTL,
		ContactRateLimit:     v.GetInt("contact.rate_limit"),
	}

	if cfg.EmailJSTimeout < 0 {
		cfg.EmailJSTimeout = 0
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	if cfg.ContactRateLimit <= 0 {
		cfg.ContactRateLimit = 5
	}

	return cfg, nil
}

func parseDuration(value, fallback string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	return time.ParseDuration(value)
}
