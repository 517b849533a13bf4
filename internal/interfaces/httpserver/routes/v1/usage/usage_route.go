package usage

import (
	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/usagehandler"
)

// UsageRoute handles usage-related routes
type UsageRoute struct {
	handler *usagehandler.UsageHandler
}

// NewUsageRoute creates a new UsageRoute
func NewUsageRoute(handler *usagehandler.UsageHandler) *UsageRoute {
	return &UsageRoute{handler: handler}
}

// RegisterRouter registers usage routes on the given router
func (r *UsageRoute) RegisterRouter(router gin.IRouter) {
	usageGroup := router.Group("/usage")
	{
		usageGroup.GET("", r.handler.GetMyUsage)
		usageGroup.GET("/daily", r.handler.GetMyDailyUsage)
	}
}
