package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGCoreDSN string `envconfig:"PG_CORE_DSN" required:"true"`
	// JWT (verification only; tokens are minted by the identity provider)
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// RabbitMQ
	RabbitURL      string `envconfig:"RABBIT_URL" required:"true"`
	NotifyExchange string `envconfig:"NOTIFY_EXCHANGE" default:"notify.exchange"`
	NotifyQueue    string `envconfig:"NOTIFY_QUEUE" default:"notify.q"`
	// Payment gateway
	PaymentBaseURL   string `envconfig:"PAYMENT_BASE_URL" required:"true"`
	PaymentSecretKey string `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	// Network
	HTTPAddr string `envconfig:"CORE_HTTP_ADDR" default:":8080"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
