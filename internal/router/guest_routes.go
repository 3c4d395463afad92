package router

import (
    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/handler"
    "github.com/airnest/listing-reservation/internal/middleware"
    "github.com/airnest/listing-reservation/internal/model"
)

// RegisterGuest registers guest-scoped endpoints under /v1.  Guests
// book stays, list their own bookings, top up their wallet and review
// completed stays.
func RegisterGuest(e *echo.Echo, g *handler.GuestHandler, r *handler.ReviewHandler, jwtSecret string) {
    grp := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleGuest),
    )
    grp.POST("/bookings", g.CreateBooking)
    grp.GET("/my-bookings", g.ListBookings)
    grp.GET("/wallet", g.Wallet)
    grp.POST("/wallet/funds", g.AddFunds)
    grp.POST("/bookings/:id/reviews", r.SubmitHostAndLocationReviews)
}
