package profileroute

import (
	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/profilehandler"
)

// ProfileRoute handles profile-related routes
type ProfileRoute struct {
	handler *profilehandler.ProfileHandler
}

// NewProfileRoute creates a new ProfileRoute
func NewProfileRoute(handler *profilehandler.ProfileHandler) *ProfileRoute {
	return &ProfileRoute{handler: handler}
}

// RegisterRouter registers profile routes on the given router
func (r *ProfileRoute) RegisterRouter(router gin.IRouter) {
	profileGroup := router.Group("/profile")
	{
		profileGroup.GET("", r.handler.Get)
		profileGroup.PUT("", r.handler.Update)
	}
}
