// Package posthandler serves the post generation and retrieval endpoints.
package posthandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/generation"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/metrics"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/topiccache"
	middleware "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/middlewares"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/requests"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/requests/postreq"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses/postres"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/utils/platformerrors"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	generator *generation.Service
	posts     post.Repository
	topics    *topiccache.Cache
}

// NewPostHandler creates a new post handler
func NewPostHandler(generator *generation.Service, posts post.Repository, topics *topiccache.Cache) *PostHandler {
	return &PostHandler{
		generator: generator,
		posts:     posts,
		topics:    topics,
	}
}

// Generate runs the generation pipeline for the authenticated user.
func (h *PostHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	var req postreq.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "invalid request body", err, "8c5d2f7a-4b1e-4a9c-b6d3-0e7f1c2a5b8d"))
		return
	}

	started := time.Now()
	result, err := h.generator.Generate(c.Request.Context(), req.ToDomain(userID, middleware.RequestIDFromContext(c)))
	elapsed := time.Since(started).Seconds()

	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypePaymentRequired) {
			metrics.RecordCreditRejection()
		}
		metrics.RecordGeneration("unknown", "error", elapsed)
		responses.HandleError(c, err)
		return
	}

	metrics.RecordGeneration(string(result.Post.Format), "ok", elapsed)
	metrics.RecordReconcile(result.Report.Stage, result.Report.LeakGuardHit)
	for _, segment := range result.Summary.Segments {
		cost, _ := segment.Cost.Float64()
		metrics.RecordCost(string(segment.Purpose), segment.Provider, cost)
	}
	if result.ConversationCreated {
		metrics.RecordConversationCreated()
	}

	// The next open-ended request must see the post that just committed.
	h.topics.Invalidate(userID)

	c.JSON(http.StatusOK, postres.NewGenerateResponse(result))
}

// List returns the authenticated user's posts, newest first.
func (h *PostHandler) List(c *gin.Context) {
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

	filter := post.Filter{UserID: &userID}

	// Fetch limit+1 to compute has_more without a second query.
	var requestedLimit *int
	if pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	posts, err := h.posts.FindByFilter(c.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to list posts"))
		return
	}

	total, err := h.posts.Count(c.Request.Context(), filter)
	if err != nil {
		responses.HandleError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to count posts"))
		return
	}

	hasMore := false
	if requestedLimit != nil && len(posts) > *requestedLimit {
		hasMore = true
		posts = posts[:*requestedLimit]
	}

	c.JSON(http.StatusOK, postres.NewPostListResponse(posts, hasMore, total))
}

// Get returns one post by public ID, scoped to the authenticated user.
func (h *PostHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
		return
	}

	publicID := c.Param("post_public_id")
	found, err := h.posts.FindByPublicID(c.Request.Context(), publicID)
	if err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeNotFound, "post not found", err, "3a7c9e1d-5f2b-4d8a-9c6e-1b4f7a2d5c8e"))
		return
	}
	if found.UserID != userID {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "post not found")
		return
	}

	c.JSON(http.StatusOK, postres.NewPostResponse(found))
}
