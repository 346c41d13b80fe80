package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth returns a middleware that validates API keys.
// It checks the X-API-Key header first, then the api_key query parameter.
// If validKeys is empty, authentication is disabled. An accepted key sets the
// request actor to "api-key:" followed by a short fingerprint of the key.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	digests := make([][]byte, 0, len(validKeys))
	for key, ok := range validKeys {
		if ok {
			sum := sha256.Sum256([]byte(key))
			digests = append(digests, sum[:])
		}
	}

	return func(c *gin.Context) {
		if len(digests) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}

		sum := sha256.Sum256([]byte(key))
		if !matchDigest(digests, sum[:]) {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(ActorKey, "api-key:"+hex.EncodeToString(sum[:4]))
		c.Next()
	}
}

// matchDigest compares against every digest so that timing does not reveal which key matched.
func matchDigest(digests [][]byte, sum []byte) bool {
	found := 0
	for _, d := range digests {
		found |= subtle.ConstantTimeCompare(d, sum)
	}
	return found == 1
}

func abortUnauthorized(c *gin.Context, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
