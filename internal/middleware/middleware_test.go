package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/airnest/listing-reservation/internal/config"
    "github.com/airnest/listing-reservation/internal/utils"
)

func newContext(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, target, nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func TestJWTAuthMissingToken(t *testing.T) {
    c, rec := newContext(t, http.MethodGet, "/v1/me")
    err := JWTAuth("secret")(okHandler)(c)
    require.NoError(t, err)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
    at, err := utils.NewAccessToken("secret", 42, "GUEST", 5)
    require.NoError(t, err)

    c, rec := newContext(t, http.MethodGet, "/v1/me")
    c.Request().Header.Set("Authorization", "Bearer "+at.Token)

    var gotRole any
    next := func(c echo.Context) error {
        gotRole = c.Get("role")
        return okHandler(c)
    }
    require.NoError(t, JWTAuth("secret")(next)(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "GUEST", gotRole)
}

func TestJWTAuthWrongSecret(t *testing.T) {
    at, err := utils.NewAccessToken("secret", 42, "GUEST", 5)
    require.NoError(t, err)

    c, rec := newContext(t, http.MethodGet, "/v1/me")
    c.Request().Header.Set("Authorization", "Bearer "+at.Token)
    require.NoError(t, JWTAuth("other")(okHandler)(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
    c, rec := newContext(t, http.MethodPost, "/v1/bookings")
    c.Set("role", "GUEST")
    require.NoError(t, RequireRole("GUEST")(okHandler)(c))
    assert.Equal(t, http.StatusOK, rec.Code)

    c, rec = newContext(t, http.MethodPost, "/v1/listings")
    c.Set("role", "GUEST")
    require.NoError(t, RequireRole("HOST")(okHandler)(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    c, rec = newContext(t, http.MethodPost, "/v1/listings")
    require.NoError(t, RequireRole("HOST")(okHandler)(c), "missing role")
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
    cacheMW := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
    limitMW := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)

    c, rec := newContext(t, http.MethodGet, "/v1/search/listings")
    require.NoError(t, cacheMW(limitMW(okHandler))(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCallerID(t *testing.T) {
    c, _ := newContext(t, http.MethodGet, "/")
    assert.Equal(t, "anon", callerID(c))

    c.Set("user_id", float64(42))
    assert.Equal(t, "42", callerID(c))

    c.Set("user_id", "7")
    assert.Equal(t, "7", callerID(c))
}

func TestRateKeyStrategies(t *testing.T) {
    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}
    c, _ := newContext(t, http.MethodGet, "/v1/search/listings")
    c.SetPath("/v1/search/listings")
    assert.Equal(t, "rl:route:GET /v1/search/listings", rateKey(cfg, c))

    cfg.KeyStrategy = "caller"
    c.Set("user_id", "42")
    assert.Equal(t, "rl:caller:42", rateKey(cfg, c))
}
