package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Business BusinessConfig `mapstructure:"business"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port          int      `mapstructure:"port"`
	PublicBaseURL string   `mapstructure:"public_base_url"` // origin minted into public links
	CORSOrigins   []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type BusinessConfig struct {
	DefaultGraceDays int `mapstructure:"default_grace_days"`
	PageSize         int `mapstructure:"page_size"`
}

type LoggingConfig struct {
	File string `mapstructure:"file"`
	Prod bool   `mapstructure:"prod"`
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Load reads configs/config.yaml with environment overrides. A configs/.env
// file, when present, is loaded into the environment first so deployments
// can keep secrets out of the yaml (e.g. DATABASE_PASSWORD).
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.public_base_url", "http://localhost:8080")
	viper.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.name", "reembolsos")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("business.default_grace_days", 6)
	viper.SetDefault("business.page_size", 10)
	viper.SetDefault("logging.file", "logs/reembolsos.log")
	viper.SetDefault("logging.prod", false)
}
