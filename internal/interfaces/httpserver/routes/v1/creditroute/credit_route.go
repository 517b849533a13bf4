package creditroute

import (
	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/handlers/credithandler"
)

// CreditRoute handles credit-related routes
type CreditRoute struct {
	handler *credithandler.CreditHandler
}

// NewCreditRoute creates a new CreditRoute
func NewCreditRoute(handler *credithandler.CreditHandler) *CreditRoute {
	return &CreditRoute{handler: handler}
}

// RegisterRouter registers credit routes on the given router
func (r *CreditRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/credits", r.handler.Balance)
}
