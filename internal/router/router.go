package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/Eliox00/Sistema-de-reservas/internal/authz"
	"github.com/Eliox00/Sistema-de-reservas/internal/config"
	"github.com/Eliox00/Sistema-de-reservas/internal/handler"
	"github.com/Eliox00/Sistema-de-reservas/internal/middleware"
)

// Deps bundles everything the route tree needs.  Rdb may be nil; in that
// case the room-listing cache and the rate limiter are not installed and
// every request goes straight to the handlers.
type Deps struct {
	Cfg     config.Config
	Auth    *handler.AuthHandler
	Rooms   *handler.RoomHandler
	Resv    *handler.ReservationHandler
	Admin   *handler.AdminReservationHandler
	Rdb     *redis.Client
	CacheCf config.CacheConfig
	RateCf  config.RateLimitConfig
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers or monitoring systems to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the whole /v1 surface: the auth endpoints, the
// authenticated user endpoints and the admin endpoints.
func RegisterAPI(e *echo.Echo, d Deps) {
	// Unauthenticated session operations live under /v1/auth.  Each handler
	// is responsible for generating or exchanging tokens, so no JWT
	// middleware applies here.
	g := e.Group("/v1/auth")
	g.POST("/register", d.Auth.Register)
	g.POST("/login", d.Auth.Login)
	g.POST("/refresh", d.Auth.Refresh) // rotates the refresh token
	// Logout does not require a JWT: the handler accepts a JSON body with a
	// `refresh_token` and invalidates that token.
	g.POST("/logout", d.Auth.Logout)

	// Everything below requires a valid access token.
	auth := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret))
	if d.Rdb != nil {
		auth.Use(middleware.NewTokenBucket(d.RateCf, d.Rdb))
	}

	auth.GET("/me", d.Auth.Me)
	// Ends every session for the caller; needs the access token, not a
	// refresh token, so it works from a device that still has one.
	auth.POST("/auth/logout-all", d.Auth.LogoutAll)

	// Room browsing is the hottest read path, so the listing goes through
	// the Redis response cache when a client is available.
	if d.Rdb != nil {
		auth.GET("/rooms", d.Rooms.ListRooms, middleware.NewRedisCache(d.CacheCf, d.Rdb))
	} else {
		auth.GET("/rooms", d.Rooms.ListRooms)
	}
	auth.GET("/rooms/:id", d.Rooms.GetRoom)

	auth.POST("/reservations", d.Resv.CreateReservation)
	auth.GET("/my-reservations", d.Resv.ListMyReservations)
	auth.GET("/reservations/:id", d.Resv.GetReservation)

	// Administration: room lifecycle, the full reservation ledger, early
	// finalization and the stats panel.  The role middleware rejects
	// everyone the authz policy did not resolve to ADMIN.
	adm := auth.Group("", middleware.RequireRole(authz.RoleAdmin))
	adm.POST("/rooms", d.Rooms.CreateRoom)
	adm.PUT("/rooms/:id", d.Rooms.UpdateRoom)
	adm.PATCH("/rooms/:id/active", d.Rooms.SetRoomActive)
	adm.DELETE("/rooms/:id", d.Rooms.DeleteRoom)
	adm.GET("/admin/reservations", d.Admin.ListAllReservations)
	adm.POST("/admin/reservations/:id/finalize", d.Admin.FinalizeReservation)
	adm.GET("/admin/stats", d.Admin.AdminStats)
}
