// Package config loads the optional YAML application config (CONFIG_FILE).
// Every value has a default, so the server runs without a file; the
// environment overrides the file for the settings documented on Apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/service/auth"
	pkgconfig "newspaper-agency/pkg/config"
)

// AppConfig is the whole configuration file.
type AppConfig struct {
	Security   SecurityConfig       `yaml:"security"`
	Pagination pagination.PageSizes `yaml:"pagination"`
	HTTP       HTTPConfig           `yaml:"http"`
	LoginLimit LoginLimitConfig     `yaml:"login_limit"`
}

// SecurityConfig covers password policy and token lifetime.
type SecurityConfig struct {
	MinPasswordLength int           `yaml:"min_password_length"`
	WeakPasswords     []string      `yaml:"weak_passwords"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
}

// PasswordPolicy returns the policy the redactor use cases enforce.
func (s SecurityConfig) PasswordPolicy() auth.PasswordPolicy {
	return auth.PasswordPolicy{MinLength: s.MinPasswordLength, WeakPasswords: s.WeakPasswords}
}

// HTTPConfig configures the listener and the public surface.
type HTTPConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	TrustedProxies  []string      `yaml:"trusted_proxies"`
}

// LoginLimitConfig throttles POST /auth/token per client address.
type LoginLimitConfig struct {
	PerMinute float64       `yaml:"per_minute"`
	Burst     int           `yaml:"burst"`
	Idle      time.Duration `yaml:"idle"`
}

// Default returns the configuration used when no file is given.
func Default() AppConfig {
	return AppConfig{
		Security: SecurityConfig{
			MinPasswordLength: auth.DefaultMinPasswordLength,
			WeakPasswords:     slices.Clone(auth.DefaultWeakPasswords),
			TokenTTL:          auth.DefaultTokenTTL,
		},
		Pagination: pagination.DefaultPageSizes(),
		HTTP: HTTPConfig{
			ListenAddr:      ":8080",
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		LoginLimit: LoginLimitConfig{PerMinute: 5, Burst: 5, Idle: 10 * time.Minute},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	// #nosec G304 -- path comes from the operator (CONFIG_FILE), not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.Pagination = pagination.DefaultPageSizes().Merge(cfg.Pagination)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromEnv loads CONFIG_FILE when set, otherwise the defaults, and then
// applies the environment overrides.
func LoadFromEnv() (*AppConfig, error) {
	var cfg *AppConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		d := Default()
		cfg = &d
	}
	cfg.Apply()
	return cfg, cfg.Validate()
}

// Apply overrides file values with LISTEN_ADDR, JWT_TTL, CORS_ALLOWED_ORIGINS,
// TRUSTED_PROXIES and the PAGE_SIZE_* variables.
func (c *AppConfig) Apply() {
	c.HTTP.ListenAddr = pkgconfig.GetEnvString("LISTEN_ADDR", c.HTTP.ListenAddr)
	c.HTTP.AllowedOrigins = pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.HTTP.AllowedOrigins)
	c.HTTP.TrustedProxies = pkgconfig.GetEnvStringList("TRUSTED_PROXIES", c.HTTP.TrustedProxies)
	c.Security.TokenTTL = pkgconfig.GetEnvDuration("JWT_TTL", c.Security.TokenTTL)
	c.Pagination = pagination.LoadFromEnv(c.Pagination)
}

// Validate reports every invalid setting.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Security.MinPasswordLength < auth.DefaultMinPasswordLength {
		errs = append(errs, fmt.Errorf("security.min_password_length must be at least %d", auth.DefaultMinPasswordLength))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Security.TokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("security.token_ttl: %w", err))
	}
	if c.HTTP.ListenAddr == "" {
		errs = append(errs, errors.New("http.listen_addr is required"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("http.max_body_bytes must be positive"))
	}
	if c.LoginLimit.PerMinute <= 0 || c.LoginLimit.Burst <= 0 {
		errs = append(errs, errors.New("login_limit.per_minute and login_limit.burst must be positive"))
	}
	return errors.Join(errs...)
}
