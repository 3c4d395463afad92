package router

import (
    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/handler"
    "github.com/airnest/listing-reservation/internal/middleware"
    "github.com/airnest/listing-reservation/internal/model"
)

// RegisterHost registers host-scoped endpoints under /v1.  Hosts manage
// their listings, inspect bookings against them and review guests after
// a stay completes.
func RegisterHost(e *echo.Echo, h *handler.HostHandler, r *handler.ReviewHandler, jwtSecret string) {
    grp := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleHost),
    )
    grp.POST("/listings", h.CreateListing)
    grp.PATCH("/listings/:id", h.UpdateListing)
    grp.GET("/my-listings", h.MyListings)
    grp.GET("/listings/:id/bookings", h.ListingBookings)
    grp.POST("/bookings/:id/guest-review", r.SubmitGuestReview)
}
