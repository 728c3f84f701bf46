package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Data providers.
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderYahoo        = "yahoo"
	ProviderPolygon      = "polygon"
)

// Alert channels.
const (
	ChannelNone     = "none"
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider   string `yaml:"provider" validate:"oneof=alphavantage yahoo polygon"`
		BaseURL    string `yaml:"base_url" validate:"omitempty,url"`
		APIKey     string `yaml:"api_key"`
		OutputSize string `yaml:"output_size" validate:"oneof=compact full"`
	} `yaml:"data_source"`
	Output struct {
		DataDir     string `yaml:"data_dir" validate:"required"`
		WriteCSV    bool   `yaml:"write_csv"`
		RenderChart bool   `yaml:"render_chart"`
	} `yaml:"output"`
	Alerts struct {
		Channel      string  `yaml:"channel" validate:"oneof=none email telegram"`
		ThresholdPct float64 `yaml:"threshold_pct" validate:"gt=0"`
		Recipient    string  `yaml:"recipient"`
	} `yaml:"alerts"`
	Email struct {
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port" validate:"gte=0,lte=65535"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from" validate:"omitempty,email"`
	} `yaml:"email"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Watch struct {
		Cron    string   `yaml:"cron" validate:"required"`
		Symbols []string `yaml:"symbols"`
	} `yaml:"watch"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Output.WriteCSV = true
	cfg.Output.RenderChart = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" && cfg.provider() == ProviderAlphaVantage {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" && cfg.provider() == ProviderPolygon {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Output.DataDir = v
	}
	if v := os.Getenv("NOTIFICATION_RECIPIENT"); v != "" {
		cfg.Alerts.Recipient = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse SMTP_PORT: %w", err)
		}
		cfg.Email.SMTPPort = port
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.Email.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		cfg.Watch.Symbols = splitSymbols(v)
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderAlphaVantage
	}
	if cfg.DataSource.BaseURL == "" && cfg.DataSource.Provider == ProviderAlphaVantage {
		cfg.DataSource.BaseURL = "https://www.alphavantage.co"
	}
	if cfg.DataSource.OutputSize == "" {
		cfg.DataSource.OutputSize = "compact"
	}
	if cfg.Output.DataDir == "" {
		cfg.Output.DataDir = "data"
	}
	if cfg.Alerts.Channel == "" {
		cfg.Alerts.Channel = ChannelNone
	}
	if cfg.Alerts.ThresholdPct == 0 {
		cfg.Alerts.ThresholdPct = 5
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Alerts.Recipient == "" && cfg.Alerts.Channel == ChannelTelegram {
		cfg.Alerts.Recipient = cfg.Telegram.ChatID
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = cfg.Output.DataDir + "/robo_advisor.db"
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 0 18 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) provider() string {
	if c.DataSource.Provider == "" {
		return ProviderAlphaVantage
	}
	return c.DataSource.Provider
}

// Validate checks field constraints and the settings each provider and channel needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.DataSource.Provider {
	case ProviderAlphaVantage:
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for %s (set ALPHAVANTAGE_API_KEY)", ProviderAlphaVantage)
		}
	case ProviderPolygon:
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for %s (set POLYGON_API_KEY)", ProviderPolygon)
		}
	}

	switch c.Alerts.Channel {
	case ChannelEmail:
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("email.smtp_host is required for email alerts")
		}
		if c.Alerts.Recipient == "" {
			return fmt.Errorf("alerts.recipient is required for email alerts")
		}
	case ChannelTelegram:
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required for telegram alerts")
		}
		if c.Alerts.Recipient == "" {
			return fmt.Errorf("telegram.chat_id is required for telegram alerts")
		}
	}
	return nil
}

func splitSymbols(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
