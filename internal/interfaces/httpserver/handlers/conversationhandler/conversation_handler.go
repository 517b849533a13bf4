// Package conversationhandler serves the conversation read and delete
// endpoints. Conversations are only ever created by a generation commit.
package conversationhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/conversation"
	middleware "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/middlewares"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/requests"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses"
	conversationresponses "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses/conversation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// historyPageSize caps the turns returned with a single conversation.
const historyPageSize = 100

// ConversationHandler handles conversation-related HTTP requests
type ConversationHandler struct {
	conversations *conversation.Service
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversations *conversation.Service) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// List returns the authenticated user's conversations.
func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	// Fetch limit+1 to compute has_more without a second query.
	var requestedLimit *int
	if pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	conversations, total, err := h.conversations.List(c.Request.Context(), userID, pagination)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	hasMore := false
	if requestedLimit != nil && len(conversations) > *requestedLimit {
		hasMore = true
		conversations = conversations[:*requestedLimit]
	}

	c.JSON(http.StatusOK, conversationresponses.NewConversationListResponse(conversations, hasMore, total))
}

// Get returns one conversation with its turns.
func (h *ConversationHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	publicID := c.Param("conv_public_id")
	conv, err := h.conversations.GetByPublicID(c.Request.Context(), userID, publicID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	items, err := h.conversations.History(c.Request.Context(), conv.ID, historyPageSize)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversationresponses.NewConversationWithItemsResponse(conv, items))
}

// Delete removes a conversation after verifying ownership.
func (h *ConversationHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	publicID := c.Param("conv_public_id")
	if err := h.conversations.Delete(c.Request.Context(), userID, publicID); err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversationresponses.NewConversationDeletedResponse(publicID))
}
