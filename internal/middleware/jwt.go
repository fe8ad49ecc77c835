package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avtomaktab/avtotest-backend/internal/response"
	"github.com/avtomaktab/avtotest-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ContextKeyClaims is the Gin context key holding the validated claims.
const ContextKeyClaims = "claims"

var errNoToken = errors.New("no bearer token")

// RequireUserJWT admits only requests carrying a valid user token.
func RequireUserJWT(authService *service.AuthService) gin.HandlerFunc {
	return requireToken(authService, service.TokenTypeUser, response.ErrUserAccessOnly)
}

// RequireAdminJWT admits only requests carrying a valid admin token.
func RequireAdminJWT(authService *service.AuthService) gin.HandlerFunc {
	return requireToken(authService, service.TokenTypeAdmin, response.ErrAdminAccessOnly)
}

func requireToken(authService *service.AuthService, wantType service.TokenType, wrongTypeCode response.ErrCode) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(raw)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		if claims.TokenType != wantType {
			response.AbortFail(c, http.StatusForbidden, wrongTypeCode)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireUserWSAuth validates a user token passed as ?token=. The browser
// WebSocket API cannot set an Authorization header on the upgrade request.
func RequireUserWSAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("token")
		if raw == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(raw)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		if claims.TokenType != service.TokenTypeUser {
			response.AbortFail(c, http.StatusForbidden, response.ErrUserAccessOnly)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims returns the claims stored by the auth middlewares, or nil when
// the route is not behind one.
func GetClaims(c *gin.Context) *service.Claims {
	if v, ok := c.Get(ContextKeyClaims); ok {
		if claims, ok := v.(*service.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1], nil
	}
	// Fallback for clients that cannot set headers.
	if raw := c.Query("token"); raw != "" {
		return raw, nil
	}
	return "", errNoToken
}
