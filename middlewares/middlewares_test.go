package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type userTable map[uint]*models.User

func (u userTable) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := u[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func TestRequireAuthAndAdmin(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	users := userTable{
		1: {Model: gorm.Model{ID: 1}, IsAdmin: true, IsActive: true},
		2: {Model: gorm.Model{ID: 2}, IsActive: true},
		3: {Model: gorm.Model{ID: 3}, IsActive: false},
		4: {Model: gorm.Model{ID: 4}, IsAdmin: false, IsActive: true},
	}
	issue := func(id uint, isAdmin bool) string {
		token, err := tokens.Issue(id, isAdmin)
		require.NoError(t, err)
		return token
	}
	adminToken := issue(1, true)
	userToken := issue(2, false)
	deactivatedToken := issue(3, false)
	demotedAdminToken := issue(4, true)
	deletedToken := issue(9, false)

	router := gin.New()
	router.GET("/me", RequireAuth(tokens, users), func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	router.GET("/admin", RequireAuth(tokens, users), RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	router.GET("/unguarded-admin", RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	testCases := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{name: "no header", path: "/me", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/me", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad token", path: "/me", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", path: "/me", header: "Bearer " + userToken, wantStatus: http.StatusOK},
		{name: "non admin", path: "/admin", header: "Bearer " + userToken, wantStatus: http.StatusForbidden},
		{name: "admin", path: "/admin", header: "Bearer " + adminToken, wantStatus: http.StatusNoContent},
		{name: "admin without auth", path: "/unguarded-admin", wantStatus: http.StatusUnauthorized},
		{name: "deactivated account", path: "/me", header: "Bearer " + deactivatedToken, wantStatus: http.StatusForbidden},
		{name: "deleted account", path: "/me", header: "Bearer " + deletedToken, wantStatus: http.StatusUnauthorized},
		{name: "admin claim without admin role", path: "/admin", header: "Bearer " + demotedAdminToken, wantStatus: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

type memoryAttempts struct {
	failures  map[string]int
	cooldowns map[string]time.Duration
}

func newMemoryAttempts() *memoryAttempts {
	return &memoryAttempts{failures: map[string]int{}, cooldowns: map[string]time.Duration{}}
}

func (m *memoryAttempts) Cooldown(_ context.Context, key string) (time.Duration, error) {
	return m.cooldowns[key], nil
}

func (m *memoryAttempts) StartCooldown(_ context.Context, key string, d time.Duration) error {
	m.cooldowns[key] = d
	delete(m.failures, key)
	return nil
}

func (m *memoryAttempts) Failures(_ context.Context, key string) (int, error) {
	return m.failures[key], nil
}

func (m *memoryAttempts) RecordFailure(_ context.Context, key string, _ time.Duration) error {
	m.failures[key]++
	return nil
}

func (m *memoryAttempts) Reset(_ context.Context, key string) error {
	delete(m.failures, key)
	delete(m.cooldowns, key)
	return nil
}

func TestLoginRateLimit(t *testing.T) {
	attempts := newMemoryAttempts()
	router := gin.New()
	router.POST("/login", LoginRateLimit(attempts, 2, time.Minute), func(ctx *gin.Context) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, ctx.ShouldBindJSON(&body), "body must still be readable")
		if body.Password != "pw123" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"access_token": "x"})
	})

	login := func(password string) int {
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"alice","password":"`+password+`"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, login("pw123"))
	assert.Equal(t, http.StatusUnauthorized, login("wrong"))
	assert.Equal(t, http.StatusUnauthorized, login("wrong"))
	assert.Equal(t, 2, attempts.failures["alice"])

	assert.Equal(t, http.StatusTooManyRequests, login("pw123"))
	assert.Equal(t, time.Minute, attempts.cooldowns["alice"])
	assert.Equal(t, http.StatusTooManyRequests, login("pw123"))

	require.NoError(t, attempts.Reset(context.Background(), "alice"))
	assert.Equal(t, http.StatusOK, login("pw123"))
}
