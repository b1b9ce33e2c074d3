package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.temporal.io/sdk/client"
)

const (
	envPrefix     = "PETCARE_"
	configFileEnv = "PETCARE_CONFIG_FILE"

	// BrokerRabbitMQ and BrokerKafka select the event bus; empty disables publishing.
	BrokerRabbitMQ = "rabbitmq"
	BrokerKafka    = "kafka"

	insecureSecret = "petcare-insecure-development-secret"
)

// Config carries the settings for the API, worker and purger processes.
type Config struct {
	HTTP struct {
		Port         string        `koanf:"port"`
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Postgres struct {
		DSN string `koanf:"dsn"`
	} `koanf:"postgres"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Temporal struct {
		Address   string `koanf:"address"`
		Namespace string `koanf:"namespace"`
		Disabled  bool   `koanf:"disabled"`
	} `koanf:"temporal"`

	Auth struct {
		Secret              string        `koanf:"secret"`
		Issuer              string        `koanf:"issuer"`
		Audience            string        `koanf:"audience"`
		TokenTTL            time.Duration `koanf:"token_ttl"`
		AllowInsecureSecret bool          `koanf:"allow_insecure_secret"`
	} `koanf:"auth"`

	Events struct {
		Broker   string `koanf:"broker"`
		RabbitMQ struct {
			URL      string `koanf:"url"`
			Exchange string `koanf:"exchange"`
		} `koanf:"rabbitmq"`
		Kafka struct {
			Brokers []string `koanf:"brokers"`
			Topic   string   `koanf:"topic"`
		} `koanf:"kafka"`
	} `koanf:"events"`

	SMTP struct {
		Host     string `koanf:"host"`
		Port     int    `koanf:"port"`
		Username string `koanf:"username"`
		Password string `koanf:"password"`
		From     string `koanf:"from"`
	} `koanf:"smtp"`

	Sessions struct {
		PurgeInterval time.Duration `koanf:"purge_interval"`
	} `koanf:"sessions"`
}

// LoadConfig loads the API configuration and requires a token secret.
func LoadConfig() (Config, error) {
	cfg, err := LoadBaseConfig()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadBaseConfig layers .env, an optional YAML file and PETCARE_ environment variables
// and applies defaults. It skips the auth checks so the worker and purger can share it.
// Nested keys use a double underscore, e.g. PETCARE_POSTGRES__DSN.
func LoadBaseConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	k := koanf.New(".")
	if path := strings.TrimSpace(os.Getenv(configFileEnv)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validateInfra(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(key, value string) (string, any) {
	if key == configFileEnv {
		return "", nil
	}
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(strings.ReplaceAll(key, "__", "."))
	if key == "events.kafka.brokers" {
		return key, splitList(value)
	}
	return key, value
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == "" {
		c.HTTP.Port = "8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.IdleTimeout <= 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.Idempotency.TTL <= 0 {
		c.Idempotency.TTL = 24 * time.Hour
	}
	if c.Temporal.Address == "" {
		c.Temporal.Address = client.DefaultHostPort
	}
	if c.Temporal.Namespace == "" {
		c.Temporal.Namespace = client.DefaultNamespace
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "petcare-api"
	}
	if c.Auth.Audience == "" {
		c.Auth.Audience = "petcare"
	}
	if c.Auth.Secret == "" && c.Auth.AllowInsecureSecret {
		c.Auth.Secret = insecureSecret
	}
	c.Events.Broker = strings.ToLower(strings.TrimSpace(c.Events.Broker))
	if c.Events.Kafka.Topic == "" {
		c.Events.Kafka.Topic = "petcare.events"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.From == "" {
		c.SMTP.From = "no-reply@petcare.local"
	}
	if c.Sessions.PurgeInterval <= 0 {
		c.Sessions.PurgeInterval = time.Hour
	}
}

// Validate checks the constraints that defaults cannot repair.
func (c Config) Validate() error {
	if err := c.validateInfra(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret is required (set auth.allow_insecure_secret for local runs)")
	}
	return nil
}

func (c Config) validateInfra() error {
	if _, err := strconv.Atoi(c.HTTP.Port); err != nil {
		return fmt.Errorf("http.port must be numeric, got %q", c.HTTP.Port)
	}
	switch c.Events.Broker {
	case "", BrokerRabbitMQ, BrokerKafka:
	default:
		return fmt.Errorf("events.broker must be empty, %q or %q, got %q", BrokerRabbitMQ, BrokerKafka, c.Events.Broker)
	}
	if c.Events.Broker == BrokerRabbitMQ && c.Events.RabbitMQ.URL == "" {
		return errors.New("events.rabbitmq.url is required when events.broker is rabbitmq")
	}
	if c.Events.Broker == BrokerKafka && len(c.Events.Kafka.Brokers) == 0 {
		return errors.New("events.kafka.brokers is required when events.broker is kafka")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.HTTP.Port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
