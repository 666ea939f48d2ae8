package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ledgerClaims are the claims the external auth collaborator issues. The core
// trusts them as already-validated identity: Subject is the acting user,
// OrganizationID the tenant every operation is scoped to.
type ledgerClaims struct {
	jwt.RegisteredClaims
	OrganizationID string `json:"orgID"`
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and places the acting-user and organization identities into the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &ledgerClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*ledgerClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(string(userIDKey), claims.Subject)
		c.Set(string(orgIDKey), claims.OrganizationID)
		c.Request = c.Request.WithContext(withIdentity(c.Request.Context(), claims.Subject, claims.OrganizationID))

		c.Next()
	}
}

// OrgGuard rejects requests whose :orgID path parameter does not match the
// organization identity carried by the token.
func OrgGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		pathOrgID := c.Param("orgID")
		tokenOrgID, ok := GetOrgIDFromContext(c)
		if !ok || pathOrgID == "" || pathOrgID != tokenOrgID {
			GetLoggerFromCtx(c.Request.Context()).Warn("Organization mismatch between token and path",
				"path_org", pathOrgID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
