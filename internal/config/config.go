package config

import (
	"fmt"
	"os"
	"time"

	"gearshare-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Identity  IdentityConfig  `yaml:"identity"`
	Broker    BrokerConfig    `yaml:"broker"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Pricing   PricingConfig   `yaml:"pricing"`
}

// ServerConfig contains gRPC and HTTP listener settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	HTTPPort int    `yaml:"http_port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig selects the mail provider. "log" writes messages to the log
// instead of sending them.
type EmailConfig struct {
	Provider string `yaml:"provider"` // "sendgrid" or "log"
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	Type      string `yaml:"type"`       // only "mock" is implemented
	UploadDir string `yaml:"upload_dir"` // For mock storage
	BaseURL   string `yaml:"base_url"`   // Server base URL for mock URLs
	URLExpiry int    `yaml:"url_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// IdentityConfig points at the document verification service. Handovers
// cannot pass the identity step without it, so BaseURL is required.
type IdentityConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// BrokerConfig holds the AMQP settings for lifecycle events. With no URL
// events are only logged.
type BrokerConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SendReturnReminders    string `yaml:"send_return_reminders"`
	PurgeCompletedSessions string `yaml:"purge_completed_sessions"`
	SessionRetentionDays   int    `yaml:"session_retention_days"`
}

// PricingConfig seeds the fee configuration store on first start. It is never
// read at request time.
type PricingConfig struct {
	Strategy                     string  `yaml:"strategy"`
	PercentageRate               float64 `yaml:"percentage_rate"`
	MinFeeCents                  int64   `yaml:"min_fee_cents"`
	Tier1LimitCents              int64   `yaml:"tier1_limit_cents"`
	Tier1FeeCents                int64   `yaml:"tier1_fee_cents"`
	Tier2LimitCents              int64   `yaml:"tier2_limit_cents"`
	Tier2FeeCents                int64   `yaml:"tier2_fee_cents"`
	Tier3FeeCents                int64   `yaml:"tier3_fee_cents"`
	ServiceFeeThresholdCents     int64   `yaml:"service_fee_threshold_cents"`
	ServiceFeeLowCents           int64   `yaml:"service_fee_low_cents"`
	ServiceFeeHighCents          int64   `yaml:"service_fee_high_cents"`
	PowersportsDailyPremiumCents int64   `yaml:"powersports_daily_premium_cents"`
	DeductibleCents              int64   `yaml:"deductible_cents"`
}

// FeeConfig converts the seed into the domain type.
func (p PricingConfig) FeeConfig() *domain.FeeConfig {
	return &domain.FeeConfig{
		Strategy:                     domain.ProtectionStrategy(p.Strategy),
		PercentageRate:               p.PercentageRate,
		MinFeeCents:                  p.MinFeeCents,
		Tier1LimitCents:              p.Tier1LimitCents,
		Tier1FeeCents:                p.Tier1FeeCents,
		Tier2LimitCents:              p.Tier2LimitCents,
		Tier2FeeCents:                p.Tier2FeeCents,
		Tier3FeeCents:                p.Tier3FeeCents,
		ServiceFeeThresholdCents:     p.ServiceFeeThresholdCents,
		ServiceFeeLowCents:           p.ServiceFeeLowCents,
		ServiceFeeHighCents:          p.ServiceFeeHighCents,
		PowersportsDailyPremiumCents: p.PowersportsDailyPremiumCents,
		DeductibleCents:              p.DeductibleCents,
	}
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("SERVER_HTTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.HTTPPort)
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}

	// Collaborators
	if val := os.Getenv("IDENTITY_URL"); val != "" {
		c.Identity.BaseURL = val
	}
	if val := os.Getenv("IDENTITY_API_KEY"); val != "" {
		c.Identity.APIKey = val
	}
	if val := os.Getenv("BROKER_URL"); val != "" {
		c.Broker.URL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	// Email validation
	switch c.Email.Provider {
	case "":
		c.Email.Provider = "log"
	case "log":
	case "sendgrid":
		if c.Email.APIKey == "" {
			return fmt.Errorf("sendgrid api key is required")
		}
	default:
		return fmt.Errorf("unknown email provider: %s", c.Email.Provider)
	}
	if c.Email.From == "" {
		c.Email.From = "noreply@gearshare.local"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "GearShare"
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 7 * 24 * 60
	}

	// Storage validation
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if c.Storage.URLExpiry == 0 {
		c.Storage.URLExpiry = 15
	}

	// Identity validation
	if c.Identity.BaseURL == "" {
		return fmt.Errorf("identity base url is required")
	}
	if c.Identity.TimeoutSeconds == 0 {
		c.Identity.TimeoutSeconds = 10
	}

	// Broker defaults
	if c.Broker.Exchange == "" {
		c.Broker.Exchange = "gearshare.events"
	}

	// Scheduler defaults
	if c.Scheduler.SendReturnReminders == "" {
		c.Scheduler.SendReturnReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.PurgeCompletedSessions == "" {
		c.Scheduler.PurgeCompletedSessions = "0 30 3 * * *" // 3:30 AM UTC
	}
	if c.Scheduler.SessionRetentionDays == 0 {
		c.Scheduler.SessionRetentionDays = 90
	}

	// Pricing seed
	if c.Pricing.Strategy == "" {
		c.Pricing.Strategy = string(domain.ProtectionStrategyPercentage)
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the gRPC server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetHTTPAddress returns the upload/download HTTP server address
func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

func (c *Config) IdentityTimeout() time.Duration {
	return time.Duration(c.Identity.TimeoutSeconds) * time.Second
}

func (c *Config) SessionRetention() time.Duration {
	return time.Duration(c.Scheduler.SessionRetentionDays) * 24 * time.Hour
}
