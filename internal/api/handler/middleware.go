package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireIdentity validates the bearer token and stores the resolved
// identity on the context for the handlers downstream.
func (h *Handler) RequireIdentity(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	ident, err := h.Auth.ResolveIdentity(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	c.Set(identityKey, ident)
	c.Next()
}
