package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smlmotors/showroom/internal/server/auth"
	"github.com/smlmotors/showroom/internal/server/handlers/api"
)

type AuthHandler struct {
	auth *auth.AuthService
}

func New(auth *auth.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login exchanges the fixed admin credentials for a signed token.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("failed to bind json: %w", err))
		return
	}

	token, identity, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.AbortWithError(ctx, http.StatusUnauthorized, api.CodeAuthInvalidCredentials,
				errors.New("Invalid credentials"))
			return
		}
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{
		"token": token,
		"user": LoginUser{
			Username: identity.Username,
			Role:     identity.Role,
		},
		"message": "Login successful",
	})
}
