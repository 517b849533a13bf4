// Package inference implements the llm.Gateway contract over the configured
// generation providers: the official OpenAI API through go-openai and any
// OpenAI-compatible endpoint (Gemini's compat surface, self-hosted runtimes)
// over raw HTTP.
package inference

import (
	"fmt"
	"strings"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"
)

// Registry holds one constructed gateway per active provider, keyed by the
// provider name routes refer to.
type Registry struct {
	gateways map[string]llm.Gateway
}

// NewRegistry builds gateways for every active provider in the configured set.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	log := logger.GetLogger()
	registry := &Registry{gateways: make(map[string]llm.Gateway)}

	for _, entry := range cfg.ActiveProviders() {
		if !entry.Active {
			continue
		}

		var gateway llm.Gateway
		switch strings.ToLower(entry.Vendor) {
		case "openai":
			gateway = NewOpenAIGateway(entry, cfg.ProviderTimeout)
		case "openai_compatible", "compat", "custom":
			gateway = NewCompatGateway(entry, cfg.ProviderTimeout)
		default:
			return nil, fmt.Errorf("provider %q: unsupported vendor %q", entry.Name, entry.Vendor)
		}

		registry.gateways[entry.Name] = gateway
		log.Info().
			Str("provider", entry.Name).
			Str("vendor", entry.Vendor).
			Str("base_url", entry.BaseURL).
			Msg("registered generation provider")
	}

	if len(registry.gateways) == 0 {
		return nil, fmt.Errorf("no active generation providers configured")
	}
	return registry, nil
}

// Gateway returns the gateway registered under the provider name.
func (r *Registry) Gateway(name string) (llm.Gateway, bool) {
	gateway, ok := r.gateways[name]
	return gateway, ok
}
