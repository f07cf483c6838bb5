package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	CookieName       string `yaml:"cookie_name"`
	TTL              string `yaml:"ttl"`
	RefreshThreshold string `yaml:"refresh_threshold"`
}

type RateLimitConfig struct {
	Window  string `yaml:"window"`
	AuthMax int    `yaml:"auth_max"`
	APIMax  int    `yaml:"api_max"`
}

type OAuthProviderConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type OAuthConfig struct {
	Google    OAuthProviderConfig `yaml:"google"`
	Microsoft OAuthProviderConfig `yaml:"microsoft"`
	Timeout   string              `yaml:"timeout"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	OAuth     OAuthConfig     `yaml:"oauth"`
}

// Config is the resolved runtime configuration
type Config struct {
	Port        string
	GinMode     string
	Environment string

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionCookieName       string
	SessionTTL              time.Duration
	SessionRefreshThreshold time.Duration

	RateLimitWindow time.Duration
	RateLimitAuth   int
	RateLimitAPI    int

	GoogleClientID        string
	GoogleClientSecret    string
	GoogleRedirectURL     string
	MicrosoftClientID     string
	MicrosoftClientSecret string
	MicrosoftRedirectURL  string
	OAuthTimeout          time.Duration
}

// IsDevelopment reports whether the service runs in local development, which
// relaxes the Secure attribute on cookies.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads config/config.yml, applies environment overrides for secrets,
// and resolves duration strings.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := parseDuration(configFile.Session.TTL, 30*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	refreshThreshold, err := parseDuration(configFile.Session.RefreshThreshold, sessionTTL/2)
	if err != nil {
		return nil, fmt.Errorf("invalid session refresh threshold: %w", err)
	}

	window, err := parseDuration(configFile.RateLimit.Window, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	oauthTimeout, err := parseDuration(configFile.OAuth.Timeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth timeout: %w", err)
	}

	cookieName := configFile.Session.CookieName
	if cookieName == "" {
		cookieName = "session_id"
	}

	authMax := configFile.RateLimit.AuthMax
	if authMax == 0 {
		authMax = 5
	}
	apiMax := configFile.RateLimit.APIMax
	if apiMax == 0 {
		apiMax = 100
	}

	return &Config{
		Port:        fmt.Sprintf("%d", configFile.App.Port),
		GinMode:     configFile.App.GinMode,
		Environment: env("APP_ENV", configFile.App.Environment),

		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       envInt("REDIS_DB", configFile.Redis.DB),

		SessionCookieName:       cookieName,
		SessionTTL:              sessionTTL,
		SessionRefreshThreshold: refreshThreshold,

		RateLimitWindow: window,
		RateLimitAuth:   authMax,
		RateLimitAPI:    apiMax,

		GoogleClientID:        env("GOOGLE_CLIENT_ID", configFile.OAuth.Google.ClientID),
		GoogleClientSecret:    env("GOOGLE_CLIENT_SECRET", configFile.OAuth.Google.ClientSecret),
		GoogleRedirectURL:     configFile.OAuth.Google.RedirectURL,
		MicrosoftClientID:     env("MICROSOFT_CLIENT_ID", configFile.OAuth.Microsoft.ClientID),
		MicrosoftClientSecret: env("MICROSOFT_CLIENT_SECRET", configFile.OAuth.Microsoft.ClientSecret),
		MicrosoftRedirectURL:  configFile.OAuth.Microsoft.RedirectURL,
		OAuthTimeout:          oauthTimeout,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
