package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App       AppConfig
	Site      SiteConfig
	Prismic   PrismicConfig
	Instagram InstagramConfig
	Indexing  IndexingConfig
	SMTP      SMTPConfig
	Redis     RedisConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type SiteConfig struct {
	BaseURL string // canonical site origin, no trailing slash
}

type PrismicConfig struct {
	Endpoint    string // https://<repo>.cdn.prismic.io
	AccessToken string // optional for public repositories
}

type InstagramConfig struct {
	AccessToken string
	BaseURL     string
	PageLimit   int // items per page, Instagram caps at 100
	MaxPages    int // hard ceiling on pagination depth
}

type IndexingConfig struct {
	ClientEmail string
	PrivateKey  string // PEM, "\n"-escaped in env
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string // contact form recipient
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JobsConfig struct {
	WarmSchedule    string // cron spec for the cache warmer
	SitemapSchedule string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Portfolio API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Site: SiteConfig{
			BaseURL: strings.TrimRight(getEnv("SITE_BASE_URL", "https://fuminozawa-info.site"), "/"),
		},
		Prismic: PrismicConfig{
			Endpoint:    strings.TrimRight(getEnv("PRISMIC_ENDPOINT", ""), "/"),
			AccessToken: getEnv("PRISMIC_ACCESS_TOKEN", ""),
		},
		Instagram: InstagramConfig{
			AccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
			BaseURL:     strings.TrimRight(getEnv("INSTAGRAM_BASE_URL", "https://graph.instagram.com"), "/"),
			PageLimit:   getEnvInt("INSTAGRAM_PAGE_LIMIT", 100),
			MaxPages:    getEnvInt("INSTAGRAM_MAX_PAGES", 5),
		},
		Indexing: IndexingConfig{
			ClientEmail: getEnv("GOOGLE_INDEXING_CLIENT_EMAIL", ""),
			PrivateKey:  getEnv("GOOGLE_INDEXING_PRIVATE_KEY", ""),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port: getEnvInt("SMTP_PORT", 587),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
			From: getEnv("SMTP_FROM", ""),
			To:   getEnv("CONTACT_TO", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Jobs: JobsConfig{
			WarmSchedule:    getEnv("JOBS_WARM_SCHEDULE", "@every 10m"),
			SitemapSchedule: getEnv("JOBS_SITEMAP_SCHEDULE", "@hourly"),
		},
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config is usable for the current environment.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Prismic.Endpoint == "" {
			return fmt.Errorf("PRISMIC_ENDPOINT must be set in production")
		}
		if c.Instagram.AccessToken == "" {
			fmt.Println("WARNING: Instagram access token not set - gallery will be empty")
		}
		if c.SMTP.User == "" || c.SMTP.Pass == "" {
			fmt.Println("WARNING: SMTP credentials not set - contact form will not work")
		}
		if c.Indexing.ClientEmail == "" || c.Indexing.PrivateKey == "" {
			fmt.Println("WARNING: Google Indexing credentials not set - indexing pings disabled")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
