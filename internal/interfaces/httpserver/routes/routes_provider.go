package routes

import (
	"github.com/google/wire"

	v1 "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/conversation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/creditroute"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/postroute"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/profileroute"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/usage"
)

var RouteProvider = wire.NewSet(
	v1.NewV1Route,
	postroute.NewPostRoute,
	conversation.NewConversationRoute,
	usage.NewUsageRoute,
	creditroute.NewCreditRoute,
	profileroute.NewProfileRoute,
)
