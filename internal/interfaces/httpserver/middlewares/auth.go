package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain"
	authvalidator "github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/auth"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/interfaces/httpserver/responses"
)

const principalContextKey = "principal"

// AuthMiddleware validates bearer tokens and places the resulting principal
// on the request context. Every handler behind it can rely on user_id being
// set; nothing downstream trusts identity fields from the request body.
func AuthMiddleware(validator *authvalidator.Validator, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
			return
		}

		claims, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			logger.Error().Err(err).Msg("jwt validation failed")
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "unauthorized")
			return
		}

		setPrincipal(c, domain.Principal{
			ID:       claims.Subject,
			Subject:  claims.Subject,
			Issuer:   claims.Issuer,
			Username: claims.PreferredUsername,
			Email:    claims.Email,
			Name:     claims.Name,
			Scopes:   claims.Scopes,
		})

		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

// GetUserIDFromContext returns the authenticated user's ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	principal, ok := PrincipalFromContext(c)
	if !ok || principal.ID == "" {
		return "", false
	}
	return principal.ID, true
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
	// expose commonly-used identity values for downstream handlers
	c.Set("user_id", principal.ID)
	c.Set("user_email", principal.Email)
	if principal.ID != "" {
		c.Writer.Header().Set("X-User-ID", principal.ID)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
