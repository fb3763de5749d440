package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process-wide settings. It is built once in main and
// passed down; nothing reads the environment after Load returns.
type Config struct {
	AuthToken          string `mapstructure:"auth_token"`
	EbayAPIURL         string `mapstructure:"ebay_api_url" validate:"required,url"`
	EbaySiteID         string `mapstructure:"ebay_site_id" validate:"required,numeric"`
	CompatibilityLevel string `mapstructure:"ebay_compatibility_level" validate:"required,numeric"`
	TimeoutSeconds     int64  `mapstructure:"ebay_timeout_seconds" validate:"gt=0"`

	ServerPort int    `mapstructure:"server_port" validate:"gt=0,lt=65536"`
	LogLevel   string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	WebDir     string `mapstructure:"web_dir" validate:"required"`

	// Optional fetch history. Disabled when empty.
	DatabaseURL string `mapstructure:"database_url"`

	NgrokEnabled   bool   `mapstructure:"ngrok_enabled"`
	NgrokAuthtoken string `mapstructure:"ngrok_authtoken" validate:"required_if=NgrokEnabled true"`

	UpstreamTimeout time.Duration `mapstructure:"-"`
}

var validate = validator.New()

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("auth_token", "")
	v.SetDefault("ebay_api_url", "https://api.ebay.com/ws/api.dll")
	v.SetDefault("ebay_site_id", "0")
	v.SetDefault("ebay_compatibility_level", "967")
	v.SetDefault("ebay_timeout_seconds", 30)
	v.SetDefault("server_port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("web_dir", "./web")
	v.SetDefault("database_url", "")
	v.SetDefault("ngrok_enabled", false)
	v.SetDefault("ngrok_authtoken", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.UpstreamTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HistoryEnabled reports whether fetches should be persisted.
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// String hides the credentials so the config can be logged at startup.
func (c Config) String() string {
	return fmt.Sprintf("Config{EbayAPIURL:%s SiteID:%s CompatibilityLevel:%s Timeout:%s Port:%d LogLevel:%s WebDir:%s History:%t Ngrok:%t AuthToken:%s}",
		c.EbayAPIURL, c.EbaySiteID, c.CompatibilityLevel, c.UpstreamTimeout, c.ServerPort, c.LogLevel, c.WebDir,
		c.DatabaseURL != "", c.NgrokEnabled, mask(c.AuthToken))
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "<set>"
}
