package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"script9/access"
	"script9/constants"
	"script9/models"
	"script9/services/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(sub, role string) SessionClaims {
	return SessionClaims{
		Role:           role,
		Email:          sub + "@example.com",
		StandardClaims: jwt.StandardClaims{Subject: sub, ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}
}

type recordingSyncer struct {
	mu       sync.Mutex
	profiles []models.User
}

func (s *recordingSyncer) SyncProfile(_ context.Context, p models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = append(s.profiles, p)
	return nil
}

func actorRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handler)
	r.GET("/me", func(c *gin.Context) {
		actor, ok := GetActor(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "id": actor.UserID, "role": actor.Role})
	})
	return r
}

func get(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequiredAuthAcceptsBearerAndCookie(t *testing.T) {
	syncer := &recordingSyncer{}
	auth := NewAuthenticator(AuthOptions{Secret: testSecret, Users: syncer})
	r := actorRouter(auth.Required())
	token := sign(t, jwt.SigningMethodHS256, testSecret, validClaims("host-1", "host"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := get(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"id":"host-1","role":"host"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: constants.DefaultSessionCookie, Value: token})
	w = get(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, syncer.profiles, 2)
	assert.Equal(t, models.User{ID: "host-1", Email: "host-1@example.com", Role: "host"}, syncer.profiles[0])
}

func TestRequiredAuthRejections(t *testing.T) {
	auth := NewAuthenticator(AuthOptions{Secret: testSecret})
	r := actorRouter(auth.Required())

	expired := validClaims("guest-1", "guest")
	expired.ExpiresAt = time.Now().Add(-time.Minute).Unix()

	cases := map[string]string{
		"missing":       "",
		"garbage":       "not-a-token",
		"wrong secret":  sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims("guest-1", "guest")),
		"wrong alg":     sign(t, jwt.SigningMethodHS512, testSecret, validClaims("guest-1", "guest")),
		"expired":       sign(t, jwt.SigningMethodHS256, testSecret, expired),
		"unknown role":  sign(t, jwt.SigningMethodHS256, testSecret, validClaims("guest-1", "root")),
		"empty subject": sign(t, jwt.SigningMethodHS256, testSecret, validClaims("", "guest")),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := get(r, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "unauthorized", body["error"])
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	auth := NewAuthenticator(AuthOptions{Secret: testSecret})
	r := actorRouter(auth.Optional())

	w := get(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":false,"id":"","role":""}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, get(r, req).Code)
}

func TestGetActorWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetActor(c)
	assert.False(t, ok)

	c.Set(constants.ContextActorKey, access.Actor{UserID: "u", Role: access.RoleGuest})
	actor, ok := GetActor(c)
	assert.True(t, ok)
	assert.Equal(t, "u", actor.UserID)
}

func TestRequestIDAndSession(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), SessionMiddleware(), RequestLogger(logger.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextRequestIDKey)+"|"+c.GetString(constants.ContextSessionIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, "req-1")
	req.Header.Set(constants.HeaderSessionID, "sess-1")
	w := get(r, req)
	assert.Equal(t, "req-1|sess-1", w.Body.String())
	assert.Equal(t, "req-1", w.Header().Get(constants.HeaderRequestID))

	w = get(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(constants.HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(constants.HeaderSessionID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := get(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.False(t, limiter.Allow("1.1.1.1"))
	assert.True(t, limiter.Allow("2.2.2.2"), "buckets are per ip")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("1.1.1.1"))

	now = now.Add(defaultLimiterIdle + time.Minute)
	limiter.Allow("3.3.3.3")
	assert.Equal(t, 1, limiter.size(), "idle buckets are evicted")
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 1)
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, get(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	w := get(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too_many_requests")
}
