package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"vendor-pay.backend/internal/domain/entities"
	"vendor-pay.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T, svc *jwt.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(svc)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetUserID(c)
		email, _ := GetUserEmail(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "email": email, "role": role})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(userID, "jane@example.com", string(entities.UserRoleVendor))
	require.NoError(t, err)

	r := newAuthRouter(t, svc)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
	require.Contains(t, w.Body.String(), "jane@example.com")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)
	r := newAuthRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)
	r := newAuthRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", -time.Minute, time.Hour)
	pair, err := svc.GenerateTokenPair(uuid.New(), "jane@example.com", string(entities.UserRoleCustomer))
	require.NoError(t, err)

	r := newAuthRouter(t, svc)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "expired")
}

func TestRequireRole_Matrix(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)

	cases := []struct {
		name       string
		role       entities.UserRole
		middleware gin.HandlerFunc
		wantStatus int
	}{
		{"admin passes admin gate", entities.UserRoleAdmin, RequireAdmin(), http.StatusOK},
		{"vendor blocked from admin gate", entities.UserRoleVendor, RequireAdmin(), http.StatusForbidden},
		{"finance passes finance gate", entities.UserRoleFinance, RequireFinance(), http.StatusOK},
		{"admin passes finance gate", entities.UserRoleAdmin, RequireFinance(), http.StatusOK},
		{"customer blocked from finance gate", entities.UserRoleCustomer, RequireFinance(), http.StatusForbidden},
		{"operations passes operations gate", entities.UserRoleOperations, RequireOperations(), http.StatusOK},
		{"vendor passes vendor gate", entities.UserRoleVendor, RequireVendor(), http.StatusOK},
		{"finance blocked from vendor gate", entities.UserRoleFinance, RequireVendor(), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pair, err := svc.GenerateTokenPair(uuid.New(), "x@example.com", string(tc.role))
			require.NoError(t, err)

			r := newAuthRouter(t, svc, tc.middleware)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRequireRole_NoRoleInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
