package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/elitehands/elitehands-api/internal/config"
	"github.com/elitehands/elitehands-api/internal/sessions"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextTokenJTI = "tokenJTI"
	ContextTokenExp = "tokenExp"
)

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"code":    http.StatusUnauthorized,
		"message": message,
		"data":    nil,
	})
}

// TokenFromRequest accepts a bearer header or the access_token cookie, so
// both API clients and browsers can call protected endpoints.
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

type tokenClaims struct {
	UserID uint
	Role   string
	JTI    string
	Exp    int64
}

// validateToken parses and verifies the JWT and checks it against the
// revocation store.
func validateToken(c *gin.Context, cfg *config.Config, store *sessions.Store, tokenString string) (tokenClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return tokenClaims{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, false
	}

	userID, ok1 := claims["sub"].(float64)
	role, ok2 := claims["role"].(string)
	if !ok1 || !ok2 {
		return tokenClaims{}, false
	}
	jti, _ := claims["jti"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	ctx := c.Request.Context()
	if store.IsTokenRevoked(ctx, jti) {
		return tokenClaims{}, false
	}
	if store.IssuedBeforeRevocation(ctx, uint(userID), time.Unix(int64(iat), 0)) {
		return tokenClaims{}, false
	}

	return tokenClaims{
		UserID: uint(userID),
		Role:   role,
		JTI:    jti,
		Exp:    int64(exp),
	}, true
}

func setIdentity(c *gin.Context, tc tokenClaims) {
	c.Set(ContextUserID, tc.UserID)
	c.Set(ContextUserRole, tc.Role)
	c.Set(ContextTokenJTI, tc.JTI)
	c.Set(ContextTokenExp, tc.Exp)
}

func AuthMiddleware(cfg *config.Config, store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			unauthorized(c, "Authentication required")
			return
		}

		tc, ok := validateToken(c, cfg, store, tokenString)
		if !ok {
			unauthorized(c, "Invalid or expired token")
			return
		}

		setIdentity(c, tc)
		c.Next()
	}
}

// OptionalAuthMiddleware loads the identity when a valid token is presented
// and lets anonymous requests pass through untouched. Endpoints that serve
// both public and private views decide per-request.
func OptionalAuthMiddleware(cfg *config.Config, store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := TokenFromRequest(c); tokenString != "" {
			if tc, ok := validateToken(c, cfg, store, tokenString); ok {
				setIdentity(c, tc)
			}
		}
		c.Next()
	}
}
