package middleware

import (
	"net/http"
	"strings"

	"learnplatform/internal/domain"
	"learnplatform/services/api-gateway/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Session resolves the caller's role context on every request. A missing or
// invalid bearer token is not an error here: the caller is simply a guest.
func Session(uc *usecase.SessionUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		s := uc.Resolve(c.Request.Context(), token)
		c.Set(sessionKey, s)
		if s.Wallet != "" {
			c.Set("wallet", s.Wallet)
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) usecase.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(usecase.Session); ok {
			return s
		}
	}
	return usecase.Guest()
}

// RequireRegistered lets through only wallets with a registered role.
func RequireRegistered() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := CurrentSession(c)
		switch s.State {
		case usecase.StateReady:
			c.Next()
		case usecase.StateUnregistered:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "register this wallet first", "redirect": "/register"})
		case usecase.StateError:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": s.Error})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
		}
	}
}

func RequireRole(role domain.Role) gin.HandlerFunc {
	registered := RequireRegistered()
	return func(c *gin.Context) {
		registered(c)
		if c.IsAborted() {
			return
		}
		if CurrentSession(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: " + string(role) + "s only"})
		}
	}
}
