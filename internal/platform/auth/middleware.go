package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"LMS-backend/internal/platform/apierr"
)

const ctxIdentityKey = "auth_identity"

// RequireAuth validates the Bearer token, loads the referenced session row
// and attaches an Identity to the request context. A missing session row
// (logout, expiry cleanup) rejects the request even when the signature is
// still valid.
func RequireAuth(secret []byte, sessions Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "missing Authorization header"))
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "invalid Authorization header"))
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "empty token"))
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			// Pin the algorithm; rejects alg=none and friends.
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || token == nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "invalid claims"))
			return
		}

		sid, ok := claims["sid"].(string)
		if !ok || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "missing sid"))
			return
		}

		sess, err := sessions.GetSession(c.Request.Context(), sid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierr.Body(apierr.CodeInternal, "session lookup failed"))
			return
		}
		if sess == nil || time.Now().After(sess.ExpiresAt) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "session expired"))
			return
		}

		c.Set(ctxIdentityKey, Identity{
			SessionID: sess.ID,
			MemberID:  sess.MemberID,
			StaffID:   sess.StaffID,
			Name:      sess.DisplayName,
			Role:      sess.Role,
		})
		c.Next()
	}
}

// RequireStaff allows staff and admin identities through.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, apierr.Body(apierr.CodeForbidden, "staff access required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only Administrator staff through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, apierr.Body(apierr.CodeForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}

// WithIdentity returns middleware that injects a fixed identity, bypassing
// token verification. Handler tests use it in place of RequireAuth.
func WithIdentity(id Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxIdentityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the Identity set by RequireAuth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
