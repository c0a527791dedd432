package api

import (
	"errors"
	"net/http"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the per-role login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login returns the handler for one role's login route. The three login
// endpoints differ only in which collection the credentials are checked
// against.
func (h *AuthHandler) Login(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}

		token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, role)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				abortWithError(c, http.StatusUnauthorized, "Invalid login credentials")
				return
			}
			abortWithServerError(c, "Login failed", err)
			return
		}

		c.JSON(http.StatusOK, LoginResponse{Token: token})
	}
}
