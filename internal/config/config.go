package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultConfigDir  = "configs"
	defaultConfigName = "config"
	envPrefix         = "APP"
)

// Config holds everything the binaries read at startup.
type Config struct {
	Port     string
	BasePath string

	Log   LogConfig
	DB    DBConfig
	Auth  AuthConfig
	Redis RedisConfig
	CORS  CORSConfig
}

type LogConfig struct {
	Level    string
	Encoding string // console | json
}

type DBConfig struct {
	Driver string // sqlite | postgres
	DSN    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// RedisConfig configures the optional task list cache. Empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

var ErrMissingJWTSecret = errors.New("auth.jwt_secret is not set")

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("base_path", "/api")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "app.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load reads configs/config.yml (or the file at path) and applies APP_* env overrides.
// A missing file is fine; a malformed one is not.
func Load(path string) (*Config, error) {
	// .env is optional, same as in local development setups
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultConfigDir) // configs/config.yml
		v.SetConfigName(defaultConfigName)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		BasePath: normalizeBasePath(v.GetString("base_path")),
		Log: LogConfig{
			Level:    v.GetString("log.level"),
			Encoding: v.GetString("log.encoding"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
			DSN:    v.GetString("db.dsn"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = time.Hour
	}
	return cfg, nil
}

// Validate checks settings the API server cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}
