package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Cache struct {
	Backend string `mapstructure:"backend"` // "file" or "postgres"
	Path    string `mapstructure:"path"`
}

type RatesAPI struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Quota struct {
	MaxPerDay int `mapstructure:"max_per_day"`
}

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Scheduler struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type AppConfig struct {
	Cache      Cache      `mapstructure:"cache"`
	RatesAPI   RatesAPI   `mapstructure:"rates_api"`
	Quota      Quota      `mapstructure:"quota"`
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Logging    Logging    `mapstructure:"logging"`
	DbServer   DbServer   `mapstructure:"db_server"`
}

// Init loads configuration from config.yaml and the environment. Every
// setting has a default, so the converter runs with no config file at
// all.
func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is a development convenience, its absence is fine.
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.path", ".rates_cache.json")
	viper.SetDefault("rates_api.base_url", "https://api.exchangerate.host")
	viper.SetDefault("rates_api.timeout_seconds", 10)
	viper.SetDefault("quota.max_per_day", 2)
	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("scheduler.interval_seconds", 3600)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("db_server.max_conns", 10)

	// cache env vars
	_ = viper.BindEnv("cache.backend", "CACHE_BACKEND")
	_ = viper.BindEnv("cache.path", "CACHE_PATH")

	// rates api env vars
	_ = viper.BindEnv("rates_api.base_url", "RATES_API_BASE_URL")
	_ = viper.BindEnv("rates_api.timeout_seconds", "RATES_API_TIMEOUT_SECONDS")

	// quota / http / scheduler / logging env vars
	_ = viper.BindEnv("quota.max_per_day", "QUOTA_MAX_PER_DAY")
	_ = viper.BindEnv("http_server.port", "HTTP_PORT")
	_ = viper.BindEnv("scheduler.interval_seconds", "SCHEDULER_INTERVAL_SECONDS")
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	// db server env vars (postgres cache backend)
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
