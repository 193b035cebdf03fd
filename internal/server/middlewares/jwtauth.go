package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smlmotors/showroom/internal/server/auth"
	"github.com/smlmotors/showroom/internal/server/handlers/api"
)

const (
	bearerPrefix = "Bearer "
	authHeader   = "Authorization"

	// UserContextKey holds the verified identity in the gin context.
	UserContextKey = "user"
)

// JWTAuth validates the bearer token on protected routes. The server is
// stateless; the token is re-verified on every call.
func JWTAuth(authService *auth.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		headerValue := ctx.GetHeader(authHeader)
		if headerValue == "" {
			api.AbortWithError(ctx, http.StatusUnauthorized, api.CodeAuthRequired,
				errors.New("authorization header is missing"))
			return
		}

		if !strings.HasPrefix(headerValue, bearerPrefix) {
			api.AbortWithError(ctx, http.StatusUnauthorized, api.CodeAuthRequired,
				errors.New("authorization header format must be Bearer {token}"))
			return
		}

		tokenString := strings.TrimPrefix(headerValue, bearerPrefix)
		if tokenString == "" {
			api.AbortWithError(ctx, http.StatusUnauthorized, api.CodeAuthRequired,
				errors.New("token is missing"))
			return
		}

		claims, err := authService.VerifyToken(tokenString)
		if err != nil {
			api.AbortWithError(ctx, http.StatusUnauthorized, api.CodeAuthInvalidCredentials, err)
			return
		}

		ctx.Set(UserContextKey, claims)
		ctx.Next()
	}
}

// GetClaims returns the identity stored by JWTAuth, if any.
func GetClaims(ctx *gin.Context) (*auth.Claims, bool) {
	v, ok := ctx.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
