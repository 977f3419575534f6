package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Reminder bot
	Telegram       TelegramConfig
	Storage        StorageConfig
	Scheduler      SchedulerConfig
	DateTime       DateTimeConfig
	Intake         IntakeConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string `validate:"required"`
}

type HTTPServerConfig struct {
	Port int    `validate:"min=1,max=65535"`
	Mode string `validate:"oneof=debug release test"`
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken        string
	WebhookURL      string
	WebhookSecret   string
	AllowedIPs      []string
	RateLimitPerMin int `validate:"min=0"`
}

type StorageConfig struct {
	Driver string `validate:"oneof=json sqlite"`
	Path   string `validate:"required"`
}

type SchedulerConfig struct {
	Interval        time.Duration `validate:"gt=0"`
	DeliveryTimeout time.Duration `validate:"gt=0"`
	MaxAttempts     int           `validate:"min=0"`
}

type DateTimeConfig struct {
	Languages    []string `validate:"min=1"`
	DateOrder    string   `validate:"oneof=DMY MDY YMD"`
	PreferFuture bool
	Timezone     string `validate:"required"`
}

type IntakeConfig struct {
	TTL      time.Duration `validate:"gt=0"`
	Capacity int           `validate:"gt=0"`
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = expandEnvVar(viper.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = expandEnvVar(viper.GetString("telegram.webhook_secret"))
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")
	cfg.Telegram.AllowedIPs = splitList(viper.GetString("telegram.allowed_ips"))
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Storage
	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))
	cfg.Storage.Path = viper.GetString("storage.path")
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath(cfg.Storage.Driver)
	}

	// Scheduler
	cfg.Scheduler.Interval = viper.GetDuration("scheduler.interval")
	cfg.Scheduler.DeliveryTimeout = viper.GetDuration("scheduler.delivery_timeout")
	cfg.Scheduler.MaxAttempts = viper.GetInt("scheduler.max_attempts")

	// Date/time extraction
	// env vars arrive as one comma-separated string
	cfg.DateTime.Languages = splitList(strings.Join(viper.GetStringSlice("datetime.languages"), ","))
	cfg.DateTime.DateOrder = strings.ToUpper(viper.GetString("datetime.date_order"))
	cfg.DateTime.PreferFuture = viper.GetBool("datetime.prefer_future")
	cfg.DateTime.Timezone = viper.GetString("datetime.timezone")

	// Intake
	cfg.Intake.TTL = viper.GetDuration("intake.ttl")
	cfg.Intake.Capacity = viper.GetInt("intake.capacity")

	// Google Calendar (optional)
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("telegram.rate_limit_per_min", 30)

	viper.SetDefault("storage.driver", "json")

	viper.SetDefault("scheduler.interval", "30s")
	viper.SetDefault("scheduler.delivery_timeout", "10s")
	viper.SetDefault("scheduler.max_attempts", 0)

	viper.SetDefault("datetime.languages", []string{"ru"})
	viper.SetDefault("datetime.date_order", "DMY")
	viper.SetDefault("datetime.prefer_future", true)
	viper.SetDefault("datetime.timezone", "Local")

	viper.SetDefault("intake.ttl", "30m")
	viper.SetDefault("intake.capacity", 10000)

	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
}

// defaultStoragePath keeps the SQLite database apart from a legacy tasks.json.
func defaultStoragePath(driver string) string {
	if driver == "sqlite" {
		return "tasks.db"
	}
	return "tasks.json"
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// splitList splits a comma-separated value since viper does not split env strings.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
