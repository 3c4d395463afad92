package router // route registration for the booking API

import (
    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/handler"
    "github.com/airnest/listing-reservation/internal/middleware"
    "github.com/airnest/listing-reservation/internal/model"
)

// RegisterRoutes registers routes that need no authentication beyond
// themselves.  /healthz is used by load balancers to verify liveness.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session lifecycle.  Register, login, refresh
// and logout live under /v1/auth and need no token; /v1/me requires a
// valid access token from either role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(model.RoleHost, model.RoleGuest))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse surface: listing
// search, listing detail, price quotes and host ratings.  The cache
// middleware is applied here because these endpoints are read-heavy
// and tolerate a short staleness window.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, r *handler.ReviewHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1")
    if cache != nil {
        g.Use(cache)
    }
    g.GET("/search/listings", p.SearchListings)
    g.GET("/listings/:id", p.GetListing)
    g.GET("/listings/:id/quote", p.Quote)
    g.GET("/hosts/:id/rating", r.HostRating)
    g.GET("/bookings/:id/reviews", r.BookingReviews)
}
