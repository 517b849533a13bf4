package inference

import (
	"context"
	"errors"
	"time"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/llm"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/logger"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/metrics"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/observability"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
	"go.opentelemetry.io/otel/attribute"
)

// Caller routes purpose-tagged generation calls to the configured
// provider/model pair, applies the route's temperature when the request sets
// none, bounds every call with the provider timeout and tags the resulting
// usage with the purpose.
type Caller struct {
	cfg      *config.Config
	registry *Registry
}

func NewCaller(cfg *config.Config, registry *Registry) llm.Caller {
	return &Caller{cfg: cfg, registry: registry}
}

func (c *Caller) GenerateFor(ctx context.Context, purpose llm.Purpose, req llm.GenerateRequest) (*llm.Result, error) {
	route, ok := c.cfg.RouteForPurpose(string(purpose))
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeInternal,
			"no provider route configured for purpose "+string(purpose), nil, "4f8b2d6a-1c3e-4a9f-8e7b-2d5c9f1a3b6e")
	}
	gateway, ok := c.registry.Gateway(route.Provider)
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeInternal,
			"provider "+route.Provider+" is not registered", nil, "b7e1c4d9-5a2f-4b8c-9d3e-6f1a7c2b5e8d")
	}

	if req.Model == "" {
		req.Model = route.Model
	}
	if req.Temperature == nil {
		req.Temperature = route.Temperature
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.ProviderTimeout)
	defer cancel()

	callCtx, span := observability.StartSpan(callCtx, c.cfg.ServiceName, "llm.generate")
	defer span.End()
	observability.AddSpanAttributes(callCtx,
		attribute.String("llm.provider", route.Provider),
		attribute.String("llm.model", req.Model),
		attribute.String("llm.purpose", string(purpose)),
	)

	started := time.Now()
	result, err := gateway.Generate(callCtx, req)
	elapsed := time.Since(started)

	if err != nil {
		observability.RecordError(callCtx, err)
		metrics.RecordProviderCall(route.Provider, req.Model, string(purpose), "error", elapsed.Seconds())
		log := logger.GetLogger()
		log.Warn().
			Err(err).
			Str("provider", route.Provider).
			Str("model", req.Model).
			Str("purpose", string(purpose)).
			Dur("duration", elapsed).
			Msg("provider call failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeTimeout,
				"provider "+route.Provider+" timed out", err, "e2a9c6f1-3b7d-4e5a-8c1f-9d4b6a2e7c3f")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"provider "+route.Provider+" call failed", err, "1d6f3a8c-9e2b-4c7d-a5f1-8b3e6c9d2a7f")
	}

	result.Usage.Purpose = purpose
	if result.Usage.Provider == "" {
		result.Usage.Provider = gateway.Name()
	}
	if result.Usage.Model == "" {
		result.Usage.Model = req.Model
	}

	metrics.RecordProviderCall(result.Usage.Provider, result.Usage.Model, string(purpose), "ok", elapsed.Seconds())
	metrics.RecordTokens(string(purpose), result.Usage.Provider, result.Usage.InputTokens, result.Usage.OutputTokens)

	return result, nil
}

// RouteFor exposes the provider/model a purpose resolves to so degraded paths
// can attribute zeroed usage records.
func (c *Caller) RouteFor(purpose llm.Purpose) (string, string, bool) {
	route, ok := c.cfg.RouteForPurpose(string(purpose))
	if !ok {
		return "", "", false
	}
	return route.Provider, route.Model, true
}
