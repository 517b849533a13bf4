//go:build wireinject

package main

import (
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		handlers.HandlerProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
