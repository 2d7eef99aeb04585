package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jai-app/jai-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	auth := NewAuthMiddleware(testSecret)
	r.GET("/protected", auth.Authenticate(), func(c *gin.Context) {
		adminID, _ := GetAdminID(c)
		email, _ := GetAdminEmail(c)
		c.JSON(http.StatusOK, gin.H{"admin_id": adminID, "email": email})
	})
	return r
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	router := setupAuthRouter()

	validToken, err := util.GenerateToken(1, "admin@jai.app", testSecret, time.Hour)
	require.NoError(t, err)

	expiredToken, err := util.GenerateToken(1, "admin@jai.app", testSecret, -time.Hour)
	require.NoError(t, err)

	wrongKeyToken, err := util.GenerateToken(1, "admin@jai.app", "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Valid token",
			header:     "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_UNAUTHORIZED",
		},
		{
			name:       "Malformed header",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_TOKEN_INVALID",
		},
		{
			name:       "Expired token",
			header:     "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_TOKEN_EXPIRED",
		},
		{
			name:       "Token signed with wrong key",
			header:     "Bearer " + wrongKeyToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_TOKEN_INVALID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Contains(t, w.Body.String(), tt.wantCode)
			}
		})
	}
}
