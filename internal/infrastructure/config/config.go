package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "coursekit/internal/shared/config"
)

// devJWTSecret is the development fallback. Production refuses to boot with
// it; signing sessions with a known secret would let anyone mint tokens.
const devJWTSecret = "dev-only-insecure-secret"

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Email    sharedConfig.EmailConfig    `mapstructure:"email"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
}

var (
	appConfig *Config
	appConfigMu sync.RWMutex
)

// Load reads configuration from ./configs/config.yaml (when present) and
// COURSEKIT_-prefixed environment variables, then validates it for the
// requested environment.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")

	viper.SetEnvPrefix("COURSEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Running purely on defaults + environment is fine; anything other
		// than a missing file is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg, env); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// validate fails fast on configurations that must never reach production.
func validate(cfg *Config, env string) error {
	if env != "production" {
		return nil
	}
	if cfg.Auth.JWT.Secret == "" || cfg.Auth.JWT.Secret == devJWTSecret {
		return fmt.Errorf("auth.jwt.secret must be set to a non-default value in production")
	}
	if !cfg.Auth.Cookie.Secure {
		return fmt.Errorf("auth.cookie.secure must be true in production")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "coursekit_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("auth.jwt.secret", devJWTSecret)
	viper.SetDefault("auth.jwt.session_exp_hours", 24)
	viper.SetDefault("auth.cookie.domain", "")
	viper.SetDefault("auth.cookie.path", "/")
	viper.SetDefault("auth.cookie.secure", false)
	viper.SetDefault("auth.cookie.same_site", "Lax")
	viper.SetDefault("auth.magic_link.exp_minutes", 15)
	viper.SetDefault("auth.magic_link.max_requests", 3)
	viper.SetDefault("auth.magic_link.max_attempts", 5)
	viper.SetDefault("auth.magic_link.lockout_minutes", 15)
	viper.SetDefault("auth.password.bcrypt_cost", 12)

	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.from_address", "no-reply@coursekit.local")
	viper.SetDefault("email.from_name", "CourseKit")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
}
