package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server ServerConfig
	Stripe StripeConfig
	Sanity SanityConfig
	SMTP   SMTPConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Audit  AuditConfig
	Site   SiteConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

type SanityConfig struct {
	ProjectID     string `env:"SANITY_PROJECT_ID"`
	Dataset       string `env:"SANITY_DATASET" envDefault:"production"`
	APIVersion    string `env:"SANITY_API_VERSION" envDefault:"2025-08-27"`
	Token         string `env:"SANITY_API_TOKEN"`
	WebhookSecret string `env:"SANITY_WEBHOOK_SECRET"`
	// BaseURL overrides the derived https://<project>.api.sanity.io/v<version>
	// endpoint. Used by tests and API proxies.
	BaseURL string `env:"SANITY_BASE_URL"`
}

type SMTPConfig struct {
	Host        string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port        int    `env:"SMTP_PORT" envDefault:"587"`
	User        string `env:"SMTP_USER"`
	Password    string `env:"SMTP_PASSWORD"`
	ArtistEmail string `env:"ARTIST_EMAIL"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

type KafkaConfig struct {
	Brokers   []string `env:"KAFKA_BROKERS" envSeparator:","`
	SoldTopic string   `env:"KAFKA_TOPIC_SOLD" envDefault:"gallery.artwork.sold"`
}

// Enabled reports whether sale events should be streamed. An empty broker
// list disables the producer entirely.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type AuditConfig struct {
	DBPath string `env:"AUDIT_DB_PATH" envDefault:"gallery-audit.db"`
}

type SiteConfig struct {
	BaseURL           string   `env:"BASE_URL" envDefault:"http://localhost:3000"`
	ArtistName        string   `env:"ARTIST_NAME" envDefault:"Vicki Danielson"`
	ShippingCountries []string `env:"SHIPPING_COUNTRIES" envSeparator:"," envDefault:"US,CA"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
