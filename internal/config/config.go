package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton kept for call sites that cannot take injected config.
var globalConfig *Config

// Config holds all environment backed configuration for content-api.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	// Optional read replica registered through dbresolver when set.
	DBReplicaURL string `env:"DB_REPLICA_URL"`

	// Auth
	JWKSURL             string        `env:"JWKS_URL"`
	OIDCDiscoveryURL    string        `env:"OIDC_DISCOVERY_URL"`
	Issuer              string        `env:"ISSUER,notEmpty"`
	Audience            string        `env:"AUDIENCE,notEmpty"`
	RefreshJWKSInterval time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"5m"`

	// Generation providers
	ProviderConfigFile string        `env:"PROVIDER_CONFIGS_FILE"`
	ProviderConfigSet  string        `env:"PROVIDER_CONFIG_SET" envDefault:"default"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"120s"`
	Providers          *ProviderCatalog `env:"-"`

	// Generation behaviour
	DefaultHashtagCount  int           `env:"DEFAULT_HASHTAG_COUNT" envDefault:"4"`
	CreditsPerGeneration int64         `env:"CREDITS_PER_GENERATION" envDefault:"1"`
	SignupCredits        int64         `env:"SIGNUP_CREDITS" envDefault:"30"`
	TopicCacheTTL        time.Duration `env:"TOPIC_CACHE_TTL" envDefault:"5m"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"content-api"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"contentsaas"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate        bool `env:"AUTO_MIGRATE" envDefault:"true"`
	UsageRollupEnabled bool `env:"USAGE_ROLLUP_ENABLED" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.ProviderConfigSet = strings.TrimSpace(cfg.ProviderConfigSet)
	if cfg.ProviderConfigSet == "" {
		cfg.ProviderConfigSet = "default"
	}

	configFile := strings.TrimSpace(cfg.ProviderConfigFile)
	if configFile == "" {
		configFile = DefaultProviderConfigFile
	}
	catalog, err := LoadProviderCatalog(configFile)
	if err != nil {
		return nil, fmt.Errorf("load provider configs: %w", err)
	}
	cfg.Providers = catalog
	if len(catalog.ProvidersForSet(cfg.ProviderConfigSet)) == 0 {
		return nil, fmt.Errorf("provider config set %q is missing or empty in %s", cfg.ProviderConfigSet, configFile)
	}

	if cfg.JWKSURL == "" && cfg.OIDCDiscoveryURL == "" {
		return nil, errors.New("either JWKS_URL or OIDC_DISCOVERY_URL must be provided")
	}

	if cfg.JWKSURL != "" {
		if _, err := url.ParseRequestURI(cfg.JWKSURL); err != nil {
			return nil, fmt.Errorf("invalid JWKS_URL: %w", err)
		}
	}

	if cfg.OIDCDiscoveryURL != "" {
		if _, err := url.ParseRequestURI(cfg.OIDCDiscoveryURL); err != nil {
			return nil, fmt.Errorf("invalid OIDC_DISCOVERY_URL: %w", err)
		}
	}

	if cfg.DefaultHashtagCount < 0 {
		return nil, fmt.Errorf("DEFAULT_HASHTAG_COUNT must not be negative, got %d", cfg.DefaultHashtagCount)
	}
	if cfg.CreditsPerGeneration < 1 {
		return nil, fmt.Errorf("CREDITS_PER_GENERATION must be at least 1, got %d", cfg.CreditsPerGeneration)
	}
	if cfg.SignupCredits < 0 {
		return nil, fmt.Errorf("SIGNUP_CREDITS must not be negative, got %d", cfg.SignupCredits)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// ResolveJWKSURL returns the JWKS endpoint using either the explicit JWKS_URL or the OIDC discovery document.
func (c *Config) ResolveJWKSURL(ctx context.Context) (string, error) {
	if c.JWKSURL != "" {
		return c.JWKSURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.OIDCDiscoveryURL, nil)
	if err != nil {
		return "", fmt.Errorf("oidc discovery request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch oidc discovery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oidc discovery unexpected status: %s", resp.Status)
	}

	var doc struct {
		JWKSURL string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode oidc discovery: %w", err)
	}

	if doc.JWKSURL == "" {
		return "", errors.New("jwks_uri not found in discovery document")
	}

	return doc.JWKSURL, nil
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last reloaded.
func GetEnvReloadedAt() time.Time {
	if globalConfig != nil {
		return globalConfig.EnvReloadedAt
	}
	return time.Time{}
}

// ActiveProviders returns the configured provider definitions for the active set.
func (c *Config) ActiveProviders() []ProviderEntry {
	if c == nil || c.Providers == nil {
		return nil
	}
	return c.Providers.ProvidersForSet(c.ProviderConfigSet)
}

// RouteForPurpose returns the provider/model route configured for a call purpose
// in the active set, falling back to the set's default route.
func (c *Config) RouteForPurpose(purpose string) (PurposeRoute, bool) {
	if c == nil || c.Providers == nil {
		return PurposeRoute{}, false
	}
	return c.Providers.RouteForPurpose(c.ProviderConfigSet, purpose)
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
