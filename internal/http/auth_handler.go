package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/i18n"
	"github.com/guttosm/laundry-service/internal/middleware"
	"github.com/guttosm/laundry-service/internal/service"
)

// AuthHandler issues admin access tokens.
type AuthHandler struct {
	authService service.AuthService
	audit       *middleware.AsyncLogger
}

// NewAuthHandler creates a new authentication handler. al may be nil.
func NewAuthHandler(authService service.AuthService, al *middleware.AsyncLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       al,
	}
}

// IssueToken handles POST /api/auth/token requests.
//
// @Summary      Get an admin token
// @Description  Exchanges the admin credentials for a short lived JWT used to change the catalog.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.TokenRequest true "Admin credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.TokenResponse} "Access token"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.TokenRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionLogin, "Failed login attempt", err, map[string]interface{}{
			"username": req.Username,
		})
		if errors.Is(err, service.ErrInvalidCredentials) {
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set(middleware.ActorKey, req.Username)
	middleware.AuditLog(h.audit, c, model.ActionLogin, "Admin logged in", nil)
	builder.SuccessOK(token)
}
