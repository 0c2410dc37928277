package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtsvc "evorgs/internal/pkg/jwt"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt := jwtsvc.New("test-secret", time.Hour)
	r := gin.New()

	protected := r.Group("/", Auth(jwt))
	protected.GET("/me", func(c *gin.Context) {
		p, ok := MustPrincipal(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	protected.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwt
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	r, jwt := newAuthRouter(t)

	token, err := jwt.GenerateToken(42, RoleVendor)
	require.NoError(t, err)

	w := doRequest(r, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 42, body.ID)
	assert.Equal(t, RoleVendor, body.Role)
}

func TestAuth_Rejections(t *testing.T) {
	r, _ := newAuthRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, "/me", tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, "UNAUTHENTICATED", body.Error.Code)
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	expired, err := jwtsvc.New("test-secret", -time.Minute).GenerateToken(1, RoleUser)
	require.NoError(t, err)

	w := doRequest(r, "/me", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r, jwt := newAuthRouter(t)

	userToken, err := jwt.GenerateToken(1, RoleUser)
	require.NoError(t, err)
	adminToken, err := jwt.GenerateToken(2, RoleAdmin)
	require.NoError(t, err)

	w := doRequest(r, "/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
