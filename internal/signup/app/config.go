package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	APIBaseURL        string        `env:"SIGNUP_API_BASE_URL"        envDefault:"https://admin.delveng.com/api/development"`
	APIKey            string        `env:"SIGNUP_API_KEY"`
	APITimeout        time.Duration `env:"SIGNUP_API_TIMEOUT"         envDefault:"10s"`
	GoogleUserInfoURL string        `env:"SIGNUP_GOOGLE_USERINFO_URL" envDefault:"https://www.googleapis.com/oauth2/v3/userinfo"`

	// FlowSecret keys flow handles and sealed session tokens. When empty a
	// random secret is generated, so handles and stored tokens don't survive
	// a restart.
	FlowSecret string        `env:"SIGNUP_FLOW_SECRET"`
	FlowTTL    time.Duration `env:"SIGNUP_FLOW_TTL"    envDefault:"30m"`

	DatabaseFile         string        `env:"SIGNUP_DATABASE_FILE"  envDefault:"signup.db"`
	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1m"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// minSecretLength matches the HMAC key size used for flow handles.
const minSecretLength = 32

func (c Config) Validate() error {
	switch {
	case c.APIBaseURL == "":
		return errors.New("SIGNUP_API_BASE_URL must not be empty")
	case c.FlowSecret != "" && len(c.FlowSecret) < minSecretLength:
		return fmt.Errorf("SIGNUP_FLOW_SECRET must be at least %d bytes", minSecretLength)
	case c.FlowTTL <= 0:
		return errors.New("SIGNUP_FLOW_TTL must be positive")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("PORT %d is out of range", c.Port)
	}
	return nil
}
