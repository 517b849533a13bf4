// Package profilehandler serves the onboarding profile endpoints.
package profilehandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/profile"
	middleware "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/middlewares"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// ProfileHandler handles profile API requests
type ProfileHandler struct {
	profiles *profile.Service
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// ProfileResponse is the wire shape of a stored profile.
type ProfileResponse struct {
	FullName       string   `json:"full_name,omitempty"`
	Headline       string   `json:"headline,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Company        string   `json:"company,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
	Goals          string   `json:"goals,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	PreferredTone  string   `json:"preferred_tone,omitempty"`
	AboutYou       string   `json:"about_you,omitempty"`
}

func newProfileResponse(p *profile.Profile) *ProfileResponse {
	return &ProfileResponse{
		FullName:       p.FullName,
		Headline:       p.Headline,
		Industry:       p.Industry,
		Company:        p.Company,
		TargetAudience: p.TargetAudience,
		Goals:          p.Goals,
		Topics:         p.Topics,
		PreferredTone:  p.PreferredTone,
		AboutYou:       p.AboutYou,
	}
}

// Get returns the authenticated user's profile. Users who never completed
// onboarding get an empty profile, not a 404.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	stored, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to get profile"))
		return
	}
	if stored == nil {
		c.JSON(http.StatusOK, &ProfileResponse{})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(stored))
}

// Update applies partial updates to the profile, creating it on first write.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "invalid request body", err, "5d9f2c7e-3a1b-4e6d-8c4f-0b7a9e1d3c5f"))
		return
	}

	updated, err := h.profiles.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		responses.HandleError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(updated))
}
