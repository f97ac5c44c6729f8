package main

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/errors/v5"
	"github.com/joho/godotenv"
)

// appConfig is loaded from environment variables. A .env file is read first
// when present so local development does not need exported variables.
type appConfig struct {
	Addr            string        `env:"GATEWAY_ADDR" envDefault:":8080"`
	Backend         string        `env:"GATEWAY_BACKEND" envDefault:"postgres"`
	UpstreamURL     string        `env:"GATEWAY_UPSTREAM_URL"`
	CookieHashKey   string        `env:"GATEWAY_COOKIE_HASH_KEY,required"`
	CookieBlockKey  string        `env:"GATEWAY_COOKIE_BLOCK_KEY"`
	CookieDomain    string        `env:"GATEWAY_COOKIE_DOMAIN"`
	SessionLifetime time.Duration `env:"GATEWAY_SESSION_LIFETIME" envDefault:"12h"`
	RefreshWindow   time.Duration `env:"GATEWAY_SESSION_REFRESH_WINDOW" envDefault:"1h"`

	OIDC     oidcConfig     `envPrefix:"OIDC_"`
	Postgres postgresConfig `envPrefix:"DB_"`
	Spanner  spannerConfig  `envPrefix:"SPANNER_"`
	Redis    redisConfig    `envPrefix:"REDIS_"`
}

type oidcConfig struct {
	IssuerURL    string `env:"ISSUER_URL,required"`
	ClientID     string `env:"CLIENT_ID,required"`
	ClientSecret string `env:"CLIENT_SECRET,required"`
	RedirectURL  string `env:"REDIRECT_URL,required"`

	// InsecureCookie drops the Secure attribute from the OIDC state
	// cookie for plain-HTTP development setups.
	InsecureCookie bool `env:"INSECURE_COOKIE" envDefault:"false"`
}

type postgresConfig struct {
	URL string `env:"URL"`
}

type spannerConfig struct {
	Database string `env:"DATABASE"`
}

type redisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

func loadConfig() (appConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return appConfig{}, errors.Wrap(err, "godotenv.Load()")
	}

	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		return appConfig{}, errors.Wrap(err, "env.Parse()")
	}

	return cfg, nil
}
