package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/config"
	"github.com/iliyamo/armhub-seatdesk/internal/utils"
)

const secret = "s3cret"

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, 7, "head@armhub.uz", role, 5)
	require.NoError(t, err)
	return tok.Token
}

func capabilityEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, auth.FromContext(c.Request().Context()))
	}, mw...)
	return e
}

func do(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := capabilityEcho(JWTAuth(secret))

	rec := do(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())

	rec = do(e, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())

	rec = do(e, "Bearer "+token(t, "ADMIN"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"email":"head@armhub.uz","role":"ADMIN","admin":true}`, rec.Body.String())
}

func TestOptionalJWT(t *testing.T) {
	e := capabilityEcho(OptionalJWT(secret))

	rec := do(e, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":0,"email":"","role":"","admin":false}`, rec.Body.String())

	rec = do(e, "Bearer broken")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin":false`)

	rec = do(e, "Bearer "+token(t, "STAFF"))
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
}

func TestRequireAdmin(t *testing.T) {
	e := capabilityEcho(JWTAuth(secret), RequireAdmin())

	assert.Equal(t, http.StatusForbidden, do(e, "Bearer "+token(t, "STAFF")).Code)
	assert.Equal(t, http.StatusOK, do(e, "Bearer "+token(t, "ADMIN")).Code)
}

func TestRequestLogger(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger(zap.NewNop()))
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "short and stout") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/rooms/reading/seats/5/bookings", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/rooms/:room/seats/:seat/bookings")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:route:POST /v1/rooms/:room/seats/:seat/bookings", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:anon", buildRateKey(cfg, c))
}

func TestBuildRateKey_UsesOptionalToken(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	e := echo.New()
	e.POST("/book", func(c echo.Context) error {
		return c.String(http.StatusOK, buildRateKey(cfg, c))
	}, OptionalJWT(secret))

	req := httptest.NewRequest(http.MethodPost, "/book", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "STAFF"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "rl:user:7", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/book", nil))
	assert.Equal(t, "rl:user:anon", rec.Body.String())
}

func TestParseBucketResult(t *testing.T) {
	res, err := parseBucketResult([]interface{}{int64(0), int64(0), int64(1500)})
	require.NoError(t, err)
	assert.False(t, res.allowed)
	assert.Equal(t, int64(1500), res.retry.Milliseconds())

	_, err = parseBucketResult("nope")
	assert.Error(t, err)
}

func TestDisabledMiddlewaresPassThrough(t *testing.T) {
	e := echo.New()
	rc := NewResponseCache(config.CacheConfig{Enabled: true}, nil, zap.NewNop())
	e.GET("/v1/news", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		rc.Middleware(), NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, zap.NewNop()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/news", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	rc.Purge(httptest.NewRequest(http.MethodGet, "/", nil).Context())
}

func TestCacheEntryRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodeEntry(http.StatusOK, hdr, []byte(`[]`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodeEntry(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, `[]`, string(body))

	_, _, _, ok = decodeEntry([]byte{0, 0})
	assert.False(t, ok)
	_, _, _, ok = decodeEntry([]byte{0, 0, 0, 200, 0, 0, 0, 99})
	assert.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	assert.False(t, cw.over)
	_, _ = cw.Write([]byte("def"))
	assert.True(t, cw.over)
	assert.Equal(t, "abcdef", rec.Body.String())
}
