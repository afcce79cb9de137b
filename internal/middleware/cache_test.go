package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Eliox00/Sistema-de-reservas/internal/config"
)

func cacheCtx(target, role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/rooms")
	if role != "" {
		c.Set("role", role)
	}
	return c
}

func cacheCfg(strategy string) config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		KeyStrategy: strategy,
		Prefix:      "cache",
	}
}

// The room listing renders occupant identity for admins only, so two
// viewers with different roles must never share a cache entry, under any
// key strategy.
func TestCacheKeyVariesByRole(t *testing.T) {
	target := "/v1/rooms?availability=occupied"
	for _, strategy := range []string{"route", "method_route", "method_route_query", "route_query"} {
		t.Run(strategy, func(t *testing.T) {
			cfg := cacheCfg(strategy)
			admin := cacheKeyFrom(cfg, cacheCtx(target, "ADMIN"))
			user := cacheKeyFrom(cfg, cacheCtx(target, "USER"))
			assert.NotEqual(t, admin, user)
		})
	}
}

func TestCacheKeyStableForSameViewerRole(t *testing.T) {
	cfg := cacheCfg("route_query")
	target := "/v1/rooms?availability=occupied"
	first := cacheKeyFrom(cfg, cacheCtx(target, "USER"))
	second := cacheKeyFrom(cfg, cacheCtx(target, "USER"))
	assert.Equal(t, first, second, "same role and query must share an entry")
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	cfg := cacheCfg("route_query")
	all := cacheKeyFrom(cfg, cacheCtx("/v1/rooms?availability=all", "USER"))
	occupied := cacheKeyFrom(cfg, cacheCtx("/v1/rooms?availability=occupied", "USER"))
	assert.NotEqual(t, all, occupied)
}

func TestCacheKeyMissingRoleDiffersFromAdmin(t *testing.T) {
	cfg := cacheCfg("route_query")
	anon := cacheKeyFrom(cfg, cacheCtx("/v1/rooms", ""))
	admin := cacheKeyFrom(cfg, cacheCtx("/v1/rooms", "ADMIN"))
	assert.NotEqual(t, anon, admin)
}
