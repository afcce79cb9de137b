package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Eliox00/Sistema-de-reservas/internal/utils"
)

const testSecret = "middleware-test-secret"

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    handler := mw(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    require.NoError(t, handler(c))
    return rec, c
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    at, err := utils.NewAccessToken(testSecret, 7, "USER", 5)
    require.NoError(t, err)

    rec, c := invoke(t, JWTAuth(testSecret), "Bearer "+at.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "USER", c.Get("role"))
    assert.Equal(t, float64(7), c.Get("user_id"), "jwt numbers decode as float64")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
    rec, _ := invoke(t, JWTAuth(testSecret), "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
    at, err := utils.NewAccessToken("another-secret", 7, "USER", 5)
    require.NoError(t, err)

    rec, _ := invoke(t, JWTAuth(testSecret), "Bearer "+at.Token)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/rooms", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("role", "ADMIN")

    handler := RequireRole("ADMIN")(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    require.NoError(t, handler(c))
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/rooms", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("role", "USER")

    handler := RequireRole("ADMIN")(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    require.NoError(t, handler(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleBlocksMissingRole(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    handler := RequireRole("ADMIN", "USER")(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    require.NoError(t, handler(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}
