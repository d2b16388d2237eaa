package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"restaurant-storefront/internal/message"
	"restaurant-storefront/internal/models"
)

// Config holds all configuration for the storefront
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Redis      RedisConfig      `yaml:"redis"`
	Restaurant RestaurantConfig `yaml:"restaurant"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `yaml:"port"`
	AdminPasscode   string        `yaml:"admin_passcode"`
	SessionIdle     time.Duration `yaml:"session_idle"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// RedisConfig holds the catalog cache connection
type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// RestaurantConfig is the initial operating config staff can later change
type RestaurantConfig struct {
	IsOpen           bool           `yaml:"is_open"`
	DefaultContactID string         `yaml:"default_contact_id"`
	MessageTemplate  string         `yaml:"message_template"`
	Branches         []BranchConfig `yaml:"branches"`
	DeliveryTiers    []TierConfig   `yaml:"delivery_tiers"`
}

type BranchConfig struct {
	Name      string `yaml:"name"`
	ContactID string `yaml:"contact_id"`
}

// TierConfig keeps the fee as text so it never passes through a float
type TierConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Fee   string `yaml:"fee"`
}

// Load reads configuration from a YAML file, fills defaults and applies
// environment overrides.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when a field is not set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			SessionIdle:     2 * time.Hour,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			TTL:  10 * time.Minute,
		},
		Restaurant: RestaurantConfig{
			IsOpen: true,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Restaurant.MessageTemplate == "" {
		c.Restaurant.MessageTemplate = message.DefaultTemplate
	}
	if len(c.Restaurant.DeliveryTiers) == 0 {
		c.Restaurant.DeliveryTiers = []TierConfig{
			{ID: "near", Label: "1-3 km", Fee: "5"},
			{ID: "medium", Label: "3-6 km", Fee: "7"},
			{ID: "far", Label: "7-10 km", Fee: "10"},
		}
	}
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() error {
	strVars := map[string]*string{
		"DB_HOST":           &c.Database.Host,
		"DB_USER":           &c.Database.User,
		"DB_PASSWORD":       &c.Database.Password,
		"DB_NAME":           &c.Database.Database,
		"RABBITMQ_HOST":     &c.RabbitMQ.Host,
		"RABBITMQ_USER":     &c.RabbitMQ.User,
		"RABBITMQ_PASSWORD": &c.RabbitMQ.Password,
		"REDIS_HOST":        &c.Redis.Host,
		"REDIS_PASSWORD":    &c.Redis.Password,
		"ADMIN_PASSCODE":    &c.Server.AdminPasscode,
	}
	for name, dst := range strVars {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"HTTP_PORT":     &c.Server.Port,
		"DB_PORT":       &c.Database.Port,
		"RABBITMQ_PORT": &c.RabbitMQ.Port,
		"REDIS_PORT":    &c.Redis.Port,
		"REDIS_DB":      &c.Redis.DB,
	}
	for name, dst := range intVars {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", name, err)
		}
		*dst = n
	}
	return nil
}

// RestaurantConfig maps the restaurant section onto the domain config
func (c *Config) RestaurantConfig() (models.RestaurantConfig, error) {
	out := models.RestaurantConfig{
		IsOpen:           c.Restaurant.IsOpen,
		DefaultContactID: c.Restaurant.DefaultContactID,
		MessageTemplate:  c.Restaurant.MessageTemplate,
	}

	for _, b := range c.Restaurant.Branches {
		out.Branches = append(out.Branches, models.Branch{Name: b.Name, ContactID: b.ContactID})
	}

	for _, t := range c.Restaurant.DeliveryTiers {
		fee, err := decimal.NewFromString(t.Fee)
		if err != nil {
			return models.RestaurantConfig{}, fmt.Errorf("delivery tier %s: invalid fee %q: %w", t.ID, t.Fee, err)
		}
		out.DeliveryTiers = append(out.DeliveryTiers, models.DeliveryTier{ID: t.ID, Label: t.Label, Fee: fee})
	}
	return out, nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

// RedisAddr returns the host:port of the cache
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
