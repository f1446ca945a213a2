package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Peers Peers

	Gateway Gateway

	Shipping Shipping

	Propagation Propagation
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

// Peers holds base URLs of the other storefront services. Each binary only
// reads the ones it talks to.
type Peers struct {
	OrderURL   string `validate:"omitempty,url"`
	UserURL    string `validate:"omitempty,url"`
	ProductURL string `validate:"omitempty,url"`

	CallTimeout time.Duration `validate:"gt=0"`
}

// Gateway tunes the simulated payment gateways.
type Gateway struct {
	CardSuccessRate   float64 `validate:"gte=0,lte=1"`
	PayPalSuccessRate float64 `validate:"gte=0,lte=1"`

	Latency time.Duration `validate:"gte=0"`
}

type Shipping struct {
	WarehouseZip string `validate:"required,len=5,numeric"`
}

type Propagation struct {
	MaxAttempts int           `validate:"gte=1"`
	BaseDelay   time.Duration `validate:"gt=0"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Peers: Peers{
			OrderURL:   env("ORDER_SERVICE_URL", "http://localhost:3001"),
			UserURL:    env("USER_SERVICE_URL", "http://localhost:3004"),
			ProductURL: env("PRODUCT_SERVICE_URL", "http://localhost:3005"),

			CallTimeout: envDuration("PEER_CALL_TIMEOUT", 5*time.Second),
		},

		Gateway: Gateway{
			CardSuccessRate:   envFloat("GATEWAY_CARD_SUCCESS_RATE", 0.9),
			PayPalSuccessRate: envFloat("GATEWAY_PAYPAL_SUCCESS_RATE", 0.95),

			Latency: envDuration("GATEWAY_LATENCY", 100*time.Millisecond),
		},

		Shipping: Shipping{
			WarehouseZip: env("WAREHOUSE_ZIP", "12345"),
		},

		Propagation: Propagation{
			MaxAttempts: envInt("PROPAGATION_MAX_ATTEMPTS", 5),
			BaseDelay:   envDuration("PROPAGATION_BASE_DELAY", 500*time.Millisecond),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if len(fallback) == 0 {
		return ""
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
