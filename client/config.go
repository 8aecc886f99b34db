package client

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultBaseURL     = "http://localhost:8000/api"
	DefaultLoginPath   = "/login/"
	DefaultServiceName = "hostel-gommon"
	clientName         = "hostel-api"
)

type Config struct {
	// BaseURL is the API prefix every route is appended to.
	BaseURL string `validate:"required,url"`
	// LoginPath is where the Navigator is sent when the API rejects the session.
	LoginPath string `validate:"required,startswith=/"`
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout     time.Duration `validate:"gte=0"`
	ServiceName string
}

func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		LoginPath:   DefaultLoginPath,
		ServiceName: DefaultServiceName,
	}
}

func (cfg *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}
