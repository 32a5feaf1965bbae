package middleware

import (
	"errors"
	"fmt"
	"strings"

	middlewareerrors "hris-payroll/internal/middleware/errors"
	"hris-payroll/internal/shared/contextutil"
	"hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates an HS256 bearer token (or the access_token cookie)
// and exposes its user_id and role claims to later handlers.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.FromError(c, middlewareerrors.ErrTokenNotFound)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			errObj := middlewareerrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = middlewareerrors.ErrTokenExpired
			}
			response.FromError(c, errObj)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.FromError(c, middlewareerrors.ErrInvalidToken)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.FromError(c, middlewareerrors.ErrInvalidToken.WithCause(errors.New("user_id claim missing")))
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), userID))

		c.Next()
	}
}
