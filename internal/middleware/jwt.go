package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/i18n"
	"github.com/guttosm/laundry-service/internal/service"
)

// Gin context keys set by the authentication middleware.
const (
	ActorKey  = "actor"
	ClaimsKey = "claims"
)

// AnonymousActor is recorded for requests without credentials.
const AnonymousActor = "anonymous"

// JWTAuth returns a middleware that requires a valid Bearer token.
// The token claims are stored under ClaimsKey and the subject becomes the actor.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}
		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, claims.Subject)
		c.Next()
	}
}

// RequireRole returns a middleware that rejects requests whose token lacks role.
// It must run after JWTAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}
		if claims.Role != role {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewError(dto.ErrCodeForbidden, message).WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// GetClaims returns the token claims stored by JWTAuth, or nil.
func GetClaims(c *gin.Context) *dto.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*dto.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetActor returns who made the request: the token subject, an API key
// fingerprint, or AnonymousActor.
func GetActor(c *gin.Context) string {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(string); ok && actor != "" {
			return actor
		}
	}
	return AnonymousActor
}
