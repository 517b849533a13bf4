// Package credithandler serves the credit balance endpoint.
package credithandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/credit"
	middleware "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/middlewares"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// CreditHandler handles credit API requests
type CreditHandler struct {
	meter credit.Meter
}

// NewCreditHandler creates a new CreditHandler
func NewCreditHandler(meter credit.Meter) *CreditHandler {
	return &CreditHandler{meter: meter}
}

// BalanceResponse is the body of GET /v1/credits.
type BalanceResponse struct {
	Balance             decimal.Decimal `json:"balance"`
	CreditsPerGeneration decimal.Decimal `json:"credits_per_generation"`
}

// Balance returns the authenticated user's credit balance. New accounts are
// seeded with the signup balance on first read.
func (h *CreditHandler) Balance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	balance, err := h.meter.Balance(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Balance:              balance,
		CreditsPerGeneration: credit.CostOf(credit.ActionPostGeneration),
	})
}
