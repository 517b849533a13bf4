package handlers

import (
	"github.com/google/wire"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/conversationhandler"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/credithandler"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/posthandler"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/profilehandler"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/usagehandler"
)

var HandlerProvider = wire.NewSet(
	posthandler.NewPostHandler,
	conversationhandler.NewConversationHandler,
	usagehandler.NewUsageHandler,
	credithandler.NewCreditHandler,
	profilehandler.NewProfileHandler,
)
