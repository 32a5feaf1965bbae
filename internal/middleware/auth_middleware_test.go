package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hris-payroll/internal/middleware"
	"hris-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
			"ctx":     contextutil.GetUserID(c.Request.Context()),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.MapClaims{"user_id": "u-1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name     string
		setup    func(req *http.Request)
		wantCode int
		wantBody string
	}{
		{
			name: "bearer token",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, valid))
			},
			wantCode: http.StatusOK,
			wantBody: `"ctx":"u-1"`,
		},
		{
			name: "cookie token",
			setup: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, testSecret, valid)})
			},
			wantCode: http.StatusOK,
			wantBody: `"role":"admin"`,
		},
		{
			name:     "missing token",
			setup:    func(req *http.Request) {},
			wantCode: http.StatusUnauthorized,
			wantBody: "token not found",
		},
		{
			name: "wrong secret",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+signToken(t, "other", valid))
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid token",
		},
		{
			name: "expired",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{
					"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix(),
				}))
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "token has expired",
		},
		{
			name: "missing user id",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.MapClaims{"role": "admin"}))
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			authRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
