package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/config"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/conversation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/creditroute"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/postroute"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/profileroute"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/routes/v1/usage"
)

type V1Route struct {
	post         *postroute.PostRoute
	conversation *conversation.ConversationRoute
	usage        *usage.UsageRoute
	credit       *creditroute.CreditRoute
	profile      *profileroute.ProfileRoute
}

func NewV1Route(
	post *postroute.PostRoute,
	conversation *conversation.ConversationRoute,
	usage *usage.UsageRoute,
	credit *creditroute.CreditRoute,
	profile *profileroute.ProfileRoute,
) *V1Route {
	return &V1Route{
		post,
		conversation,
		usage,
		credit,
		profile,
	}
}

// RegisterRouter registers the authenticated v1 surface.
func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")

	v1Route.post.RegisterRouter(v1Router)
	v1Route.conversation.RegisterRouter(v1Router)
	v1Route.usage.RegisterRouter(v1Router)
	v1Route.credit.RegisterRouter(v1Router)
	v1Route.profile.RegisterRouter(v1Router)
}

// RegisterPublicRouter registers endpoints that do not require authentication
func (v1Route *V1Route) RegisterPublicRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
}

// GetVersion returns the current build version of the API server and the
// environment reload timestamp.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}
