package interfaces

import (
	"github.com/google/wire"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
