package postroute

import (
	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/posthandler"
)

// PostRoute handles post-related routes
type PostRoute struct {
	handler *posthandler.PostHandler
}

// NewPostRoute creates a new PostRoute
func NewPostRoute(handler *posthandler.PostHandler) *PostRoute {
	return &PostRoute{handler: handler}
}

// RegisterRouter registers post routes on the given router
func (r *PostRoute) RegisterRouter(router gin.IRouter) {
	postGroup := router.Group("/posts")
	{
		postGroup.POST("/generate", r.handler.Generate)
		postGroup.GET("", r.handler.List)
		postGroup.GET("/:post_public_id", r.handler.Get)
	}
}
