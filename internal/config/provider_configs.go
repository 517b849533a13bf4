package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"
)

const DefaultProviderConfigFile = "config/providers.yml"

// ProviderEntry describes one generation provider available to the pipeline.
type ProviderEntry struct {
	Name     string
	Vendor   string // "openai" or "openai_compatible"
	BaseURL  string
	APIKey   string
	Active   bool
	Metadata map[string]string
	Models   []ModelEntry
}

// ModelEntry carries per-model pricing in USD per million tokens. Rates are kept
// as strings here; the pricing table parses them into decimals.
type ModelEntry struct {
	ID                string
	InputPerMillion   string
	OutputPerMillion  string
}

// PurposeRoute maps one call purpose to a provider/model pair.
type PurposeRoute struct {
	Provider    string
	Model       string
	Temperature *float64
}

// ProviderCatalog maintains all configured provider sets and purpose routes.
type ProviderCatalog struct {
	sets   map[string][]ProviderEntry
	routes map[string]map[string]PurposeRoute
}

// ProvidersForSet returns a copy of the providers defined for the requested set.
func (c *ProviderCatalog) ProvidersForSet(name string) []ProviderEntry {
	if c == nil {
		return nil
	}
	set := strings.TrimSpace(name)
	if set == "" {
		set = "default"
	}
	list := c.sets[set]
	if len(list) == 0 {
		return nil
	}
	result := make([]ProviderEntry, len(list))
	copy(result, list)
	return result
}

// RouteForPurpose resolves purpose -> route within a set. The "default" purpose
// route applies when no explicit route exists for the purpose.
func (c *ProviderCatalog) RouteForPurpose(set, purpose string) (PurposeRoute, bool) {
	if c == nil {
		return PurposeRoute{}, false
	}
	setName := strings.TrimSpace(set)
	if setName == "" {
		setName = "default"
	}
	routes := c.routes[setName]
	if routes == nil {
		return PurposeRoute{}, false
	}
	if route, ok := routes[strings.TrimSpace(purpose)]; ok {
		return route, true
	}
	route, ok := routes["default"]
	return route, ok
}

// LoadProviderCatalog parses the yaml file at the provided path.
func LoadProviderCatalog(path string) (*ProviderCatalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("provider config path is empty")
	}

	log := logger.GetLogger()
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read provider config %q: %w", cleanPath, err)
	}
	log.Info().Str("path", cleanPath).Msg("loading provider config file")

	var doc providerConfigDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse provider config %q: %w", cleanPath, err)
	}

	if len(doc.Providers) == 0 {
		return nil, fmt.Errorf("provider config %q has no providers defined", cleanPath)
	}

	result := &ProviderCatalog{
		sets:   make(map[string][]ProviderEntry),
		routes: make(map[string]map[string]PurposeRoute),
	}

	for rawSet, entries := range doc.Providers {
		setName := strings.TrimSpace(rawSet)
		if setName == "" || len(entries) == 0 {
			continue
		}
		for idx, entry := range entries {
			entryLogger := log.With().Str("set", setName).Int("index", idx).Str("name", entry.Name).Logger()
			enabled, err := parseEnabled(entry.EnableRaw)
			if err != nil {
				return nil, fmt.Errorf("providers.%s[%d]: %w", setName, idx, err)
			}
			if !enabled {
				entryLogger.Info().Msg("skipping provider (enable=false)")
				continue
			}
			normalized, err := normalizeProviderEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("providers.%s[%d]: %w", setName, idx, err)
			}
			entryLogger.Info().
				Str("vendor", normalized.Vendor).
				Str("base_url", normalized.BaseURL).
				Int("models", len(normalized.Models)).
				Msg("including provider")
			result.sets[setName] = append(result.sets[setName], normalized)
		}
	}

	if len(result.sets) == 0 {
		return nil, fmt.Errorf("provider config %q has no valid provider entries", cleanPath)
	}

	for rawSet, routes := range doc.Routes {
		setName := strings.TrimSpace(rawSet)
		if setName == "" || len(routes) == 0 {
			continue
		}
		normalized, err := normalizeRoutes(setName, routes, result.sets[setName])
		if err != nil {
			return nil, err
		}
		result.routes[setName] = normalized
	}

	for setName := range result.sets {
		if _, ok := result.routes[setName]["default"]; !ok {
			return nil, fmt.Errorf("provider config set %q has no default route", setName)
		}
	}

	return result, nil
}

type providerConfigDocument struct {
	Providers map[string][]providerConfigEntry     `yaml:"providers"`
	Routes    map[string]map[string]routeConfigEntry `yaml:"routes"`
}

type providerConfigEntry struct {
	EnableRaw   string             `yaml:"enable"`
	Name        string             `yaml:"name"`
	Vendor      string             `yaml:"vendor"`
	Type        string             `yaml:"type"`
	URL         string             `yaml:"url"`
	BaseURL     string             `yaml:"base_url"`
	APIKey      string             `yaml:"api_key"`
	Key         string             `yaml:"key"`
	Active      *bool              `yaml:"active"`
	Description string             `yaml:"description"`
	Metadata    map[string]string  `yaml:"metadata"`
	Models      []modelConfigEntry `yaml:"models"`
}

type modelConfigEntry struct {
	ID               string `yaml:"id"`
	InputPerMillion  string `yaml:"input_per_1m"`
	OutputPerMillion string `yaml:"output_per_1m"`
}

type routeConfigEntry struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`
}

func normalizeProviderEntry(entry providerConfigEntry) (ProviderEntry, error) {
	vendor := strings.TrimSpace(strings.ToLower(firstNonEmpty(entry.Vendor, entry.Type)))
	if vendor == "" {
		return ProviderEntry{}, errors.New("provider vendor is required")
	}

	baseURL := strings.TrimSpace(expandWithDefault(firstNonEmpty(entry.URL, entry.BaseURL)))
	if baseURL == "" {
		return ProviderEntry{}, errors.New("provider url is required")
	}

	name := strings.TrimSpace(entry.Name)
	if name == "" {
		name = fmt.Sprintf("%s Provider", strings.ToUpper(vendor))
	}
	name = os.ExpandEnv(name)

	apiKey := strings.TrimSpace(firstNonEmpty(entry.APIKey, entry.Key))
	if apiKey != "" {
		apiKey = os.ExpandEnv(apiKey)
	}

	active := true
	if entry.Active != nil {
		active = *entry.Active
	}

	metadata := cloneStringMap(entry.Metadata)
	if desc := strings.TrimSpace(os.ExpandEnv(entry.Description)); desc != "" {
		if metadata == nil {
			metadata = make(map[string]string)
		}
		metadata["description"] = desc
	}

	models := make([]ModelEntry, 0, len(entry.Models))
	for i, m := range entry.Models {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return ProviderEntry{}, fmt.Errorf("models[%d]: id is required", i)
		}
		models = append(models, ModelEntry{
			ID:               id,
			InputPerMillion:  strings.TrimSpace(m.InputPerMillion),
			OutputPerMillion: strings.TrimSpace(m.OutputPerMillion),
		})
	}

	return ProviderEntry{
		Name:     name,
		Vendor:   vendor,
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Active:   active,
		Metadata: metadata,
		Models:   models,
	}, nil
}

func normalizeRoutes(setName string, raw map[string]routeConfigEntry, providers []ProviderEntry) (map[string]PurposeRoute, error) {
	known := make(map[string]map[string]bool, len(providers))
	for _, p := range providers {
		models := make(map[string]bool, len(p.Models))
		for _, m := range p.Models {
			models[m.ID] = true
		}
		known[p.Name] = models
	}

	routes := make(map[string]PurposeRoute, len(raw))
	for purpose, entry := range raw {
		providerName := strings.TrimSpace(os.ExpandEnv(entry.Provider))
		modelID := strings.TrimSpace(os.ExpandEnv(entry.Model))
		if providerName == "" || modelID == "" {
			return nil, fmt.Errorf("routes.%s.%s: provider and model are required", setName, purpose)
		}
		models, ok := known[providerName]
		if !ok {
			return nil, fmt.Errorf("routes.%s.%s: unknown provider %q", setName, purpose, providerName)
		}
		if len(models) > 0 && !models[modelID] {
			return nil, fmt.Errorf("routes.%s.%s: model %q not declared for provider %q", setName, purpose, modelID, providerName)
		}
		routes[strings.TrimSpace(purpose)] = PurposeRoute{
			Provider:    providerName,
			Model:       modelID,
			Temperature: entry.Temperature,
		}
	}
	return routes, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(os.ExpandEnv(v))
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseEnabled(raw string) (bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return true, nil
	}

	resolved := strings.TrimSpace(expandWithDefault(value))
	if resolved == "" {
		return true, nil
	}

	parsed, err := strconv.ParseBool(resolved)
	if err != nil {
		return false, fmt.Errorf("enable: %w", err)
	}
	return parsed, nil
}

// expandWithDefault expands ${VAR} and ${VAR:-default} syntax using os envs.
func expandWithDefault(raw string) string {
	if !strings.Contains(raw, "${") {
		return os.ExpandEnv(raw)
	}
	start := strings.Index(raw, "${")
	end := strings.Index(raw[start:], "}")
	if start == -1 || end == -1 {
		return os.ExpandEnv(raw)
	}
	end = start + end
	expr := raw[start+2 : end]
	defaultVal := ""
	varName := expr
	if strings.Contains(expr, ":-") {
		parts := strings.SplitN(expr, ":-", 2)
		varName = parts[0]
		defaultVal = parts[1]
	}
	val := os.Getenv(varName)
	if val == "" {
		val = defaultVal
	}
	resolved := raw[:start] + val + raw[end+1:]
	return os.ExpandEnv(resolved)
}
