package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

type PaymentConfig struct {
	Env          string `yaml:"env" env:"PAYMENT_ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	OrderDB      `yaml:"order_db"`
	LogConfig    `yaml:"log_config"`
	Gateway      `yaml:"gateway"`
	Pricing      `yaml:"pricing"`
	KafkaService `yaml:"kafka-service"`
}

type HTTPServer struct {
	Host              string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port              string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env-default:"5s"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env-default:"30s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	AllowedOrigin     string        `yaml:"allowed_origin" env:"HTTP_ALLOWED_ORIGIN" env-default:"*"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type OrderDB struct {
	Dsn            string        `yaml:"dsn" env:"ORDER_DB_DSN"`
	MigrationsPath string        `yaml:"migrations_path" env:"ORDER_DB_MIGRATIONS" env-default:"migrations"`
	AutoMigrate    bool          `yaml:"auto_migrate" env:"ORDER_DB_AUTO_MIGRATE" env-default:"false"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env-default:"5s"`
	MaxOpenConns   int           `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns   int           `yaml:"max_idle_conns" env-default:"5"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

// Gateway holds the Razorpay credentials. KeySecret doubles as the callback
// signing secret.
type Gateway struct {
	BaseURL   string        `yaml:"base_url" env:"RAZORPAY_BASE_URL" env-default:"https://api.razorpay.com"`
	KeyID     string        `yaml:"key_id" env:"RAZORPAY_KEY_ID"`
	KeySecret string        `yaml:"key_secret" env:"RAZORPAY_SECRET_KEY"`
	Currency  string        `yaml:"currency" env:"PAYMENT_CURRENCY" env-default:"INR"`
	Timeout   time.Duration `yaml:"timeout" env:"RAZORPAY_TIMEOUT" env-default:"10s"`
}

type Pricing struct {
	WeightFactor         string        `yaml:"weight_factor" env:"PRICING_WEIGHT_FACTOR" env-default:"2"`
	AcceptAmountMismatch bool          `yaml:"accept_amount_mismatch" env:"PRICING_ACCEPT_AMOUNT_MISMATCH" env-default:"false"`
	MaxQuantity          int64         `yaml:"max_quantity" env-default:"100"`
	IdempotencyWindow    time.Duration `yaml:"idempotency_window" env-default:"10m"`
}

type KafkaService struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"payment-events"`
}

// Load reads the YAML file named by PAYMENT_CONFIG_PATH when it is set and
// applies environment overrides on top.
func Load() (*PaymentConfig, error) {
	var cfg PaymentConfig

	configPath := os.Getenv("PAYMENT_CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *PaymentConfig {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v\n", err)
	}
	return cfg
}

// Validate reports every missing or malformed required field at once.
func (c *PaymentConfig) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Gateway.KeySecret) == "" {
		problems = append(problems, "gateway.key_secret (RAZORPAY_SECRET_KEY) is required")
	}
	if strings.TrimSpace(c.Gateway.KeyID) == "" {
		problems = append(problems, "gateway.key_id (RAZORPAY_KEY_ID) is required")
	}
	if strings.TrimSpace(c.Gateway.Currency) == "" {
		problems = append(problems, "gateway.currency is required")
	}
	if c.Gateway.Timeout <= 0 {
		problems = append(problems, "gateway.timeout must be positive")
	}
	if strings.TrimSpace(c.OrderDB.Dsn) == "" {
		problems = append(problems, "order_db.dsn (ORDER_DB_DSN) is required")
	}
	if c.OrderDB.QueryTimeout <= 0 {
		problems = append(problems, "order_db.query_timeout must be positive")
	}
	if factor, err := decimal.NewFromString(c.Pricing.WeightFactor); err != nil || !factor.IsPositive() {
		problems = append(problems, "pricing.weight_factor must be a positive decimal")
	}
	if c.Pricing.MaxQuantity <= 0 {
		problems = append(problems, "pricing.max_quantity must be positive")
	}
	if c.Pricing.IdempotencyWindow <= 0 {
		problems = append(problems, "pricing.idempotency_window must be positive")
	}

	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}
