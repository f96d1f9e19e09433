package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Log         LogConfig
	DB          DBConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
	Doctor      DoctorConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// IsProduction reports whether internal error messages must be hidden from clients.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	TimeZone     string
	MaxIdleConns int
	MaxOpenConns int
	LogLevel     string
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled is false when no Redis host is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type IdempotencyConfig struct {
	TTL time.Duration
}

type DoctorConfig struct {
	IDMaxAttempts int
	DefaultActor  string
}

// LoadConfig reads settings from the given .env file (optional) and the environment.
// Environment variables always win over the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) && !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	idempotencyTTL, err := time.ParseDuration(v.GetString("IDEMPOTENCY_TTL"))
	if err != nil {
		idempotencyTTL = 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			TimeZone:     v.GetString("DB_TIMEZONE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			LogLevel:     v.GetString("DB_LOG_LEVEL"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Idempotency: IdempotencyConfig{
			TTL: idempotencyTTL,
		},
		Doctor: DoctorConfig{
			IDMaxAttempts: v.GetInt("DOCTOR_ID_MAX_ATTEMPTS"),
			DefaultActor:  v.GetString("ACTIVITY_DEFAULT_ACTOR"),
		},
	}

	if config.Doctor.IDMaxAttempts < 1 {
		config.Doctor.IDMaxAttempts = 1
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "docpool")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("DOCTOR_ID_MAX_ATTEMPTS", 5)
	v.SetDefault("ACTIVITY_DEFAULT_ACTOR", "system")
}
