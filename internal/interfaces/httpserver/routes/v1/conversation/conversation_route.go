package conversation

import (
	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/conversationhandler"
)

// ConversationRoute handles conversation-related routes
type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

// NewConversationRoute creates a new ConversationRoute
func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

// RegisterRouter registers conversation routes on the given router
func (r *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversationGroup := router.Group("/conversations")
	{
		conversationGroup.GET("", r.handler.List)
		conversationGroup.GET("/:conv_public_id", r.handler.Get)
		conversationGroup.DELETE("/:conv_public_id", r.handler.Delete)
	}
}
