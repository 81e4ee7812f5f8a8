// Package config loads application settings from the environment, an optional
// .env file and an optional config file.
package config

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// DatabaseConfig selects the SQL driver and data source.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite3 postgres"`
	DSN    string `mapstructure:"dsn" validate:"required"`
}

// ServerConfig contains the HTTP listener and logging settings.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	LogLevel string `mapstructure:"log_level" validate:"required"`
}

// StudyConfig controls study sessions.
type StudyConfig struct {
	BatchSize int `mapstructure:"batch_size" validate:"gt=0,lte=100"`
}

// TelegramConfig holds the bot token. An empty token disables the bot.
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// ReminderConfig controls the hourly study reminder job.
type ReminderConfig struct {
	StartHour int     `mapstructure:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int     `mapstructure:"end_hour" validate:"gte=0,lte=23,gtefield=StartHour"`
	Users     []int64 `mapstructure:"users"`
}
