package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port               int      `env:"PORT" envDefault:"8080"`
	DatabaseURL        string   `env:"DATABASE_URL,required"`
	RedisURL           string   `env:"REDIS_URL,required"`
	JWTSecret          string   `env:"JWT_SECRET,required"`
	TokenTTLSeconds    int      `env:"TOKEN_TTL_SECONDS" envDefault:"3600"`
	BcryptCost         int      `env:"BCRYPT_COST" envDefault:"12"`
	CORSOrigins        []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173"`
	RateLimitPerMin    int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
	WorkflowWebhookURL string   `env:"N8N_WEBHOOK_URL" envDefault:""`
	GoogleUserinfoURL  string   `env:"GOOGLE_USERINFO_URL" envDefault:"https://www.googleapis.com/oauth2/v1/userinfo"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	if c.BcryptCost < 10 || c.BcryptCost > 16 {
		return fmt.Errorf("BCRYPT_COST must be between 10 and 16")
	}

	if isProduction {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production (generate with: openssl rand -base64 32)")
		}
		for _, weak := range knownWeakSecrets {
			if c.JWTSecret == weak {
				return fmt.Errorf("JWT_SECRET is a known weak default; set a strong secret in production")
			}
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
		if c.WorkflowWebhookURL == "" {
			log.Warn().Msg("N8N_WEBHOOK_URL is empty: workflow notifications disabled")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
