// Package config loads the receipt book configuration from an optional
// YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type (
	Config struct {
		App     App     `yaml:"app"     env-prefix:"APP_"`
		HTTP    HTTP    `yaml:"http"    env-prefix:"HTTP_"`
		Storage Storage `yaml:"storage" env-prefix:"STORAGE_"`
		Logger  Logger  `yaml:"logger"  env-prefix:"LOGGER_"`
		Metrics Metrics `yaml:"metrics" env-prefix:"METRICS_"`
		Static  Static  `yaml:"static"  env-prefix:"STATIC_"`
		Policy  Policy  `yaml:"policy"  env-prefix:"POLICY_"`
	}

	App struct {
		Name string `yaml:"name" env:"NAME" env-default:"receiptbook" validate:"required"`
	}

	HTTP struct {
		Host              string        `yaml:"host"                env:"HOST"                env-default:"127.0.0.1" validate:"required"`
		Port              int           `yaml:"port"                env:"PORT"                env-default:"8080"      validate:"gte=1,lte=65535"`
		ReadTimeout       time.Duration `yaml:"read_timeout"        env:"READ_TIMEOUT"        env-default:"10s"       validate:"gte=10ms,lte=60s"`
		WriteTimeout      time.Duration `yaml:"write_timeout"       env:"WRITE_TIMEOUT"       env-default:"30s"       validate:"gte=10ms,lte=120s"`
		IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"IDLE_TIMEOUT"        env-default:"60s"       validate:"gte=10ms,lte=300s"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT" env-default:"5s"        validate:"gte=10ms,lte=30s"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SHUTDOWN_TIMEOUT"    env-default:"10s"       validate:"gte=10ms,lte=60s"`
	}

	Storage struct {
		Path string `yaml:"path" env:"PATH" env-default:"./data/receipts.db" validate:"required"`
	}

	Logger struct {
		Level  string `yaml:"level"  env:"LEVEL"  env-default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" env:"FORMAT" env-default:"text" validate:"oneof=text json"`
	}

	Metrics struct {
		// Disabled turns the metrics endpoint off.
		Disabled bool   `yaml:"disabled" env:"DISABLED"`
		Path     string `yaml:"path"     env:"PATH"     env-default:"/metrics" validate:"startswith=/"`
	}

	// Static serves a front-end directory at "/" when Path is set.
	Static struct {
		Path string `yaml:"path" env:"PATH"`
	}

	// Policy holds the business limits enforced on sellers and receipts.
	Policy struct {
		MaxRangeWidth     int     `yaml:"max_range_width"    env:"MAX_RANGE_WIDTH"    env-default:"50" validate:"min=1,max=10000"`
		DefaultCommission float64 `yaml:"default_commission" env:"DEFAULT_COMMISSION" env-default:"5"  validate:"gte=0,lte=100"`
	}
)

// Address returns the host:port the HTTP server listens on.
func (h HTTP) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Load reads configuration from configPath when it is not empty, otherwise
// from the environment alone. Environment variables override file values.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: read env: %w", op, err)
		}
	} else {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
		} else if err != nil {
			return nil, fmt.Errorf("%s: checking config file: %w", op, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: read config: %w", op, err)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// PathFromEnv returns CONFIG_PATH, the fallback when no -config flag is given.
func PathFromEnv() string {
	return os.Getenv("CONFIG_PATH")
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("config validation: %w", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, ve := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v must satisfy '%s'", ve.Namespace(), ve.Value(), ve.Tag()))
	}
	return fmt.Errorf("config validation: %s", strings.Join(msgs, "; "))
}
