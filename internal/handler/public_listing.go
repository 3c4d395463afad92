package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/model"
    "github.com/airnest/listing-reservation/internal/repository"
)

// PublicHandler exposes unauthenticated catalog reads.  Every derived
// field on a listing (rating, booked dates, upcoming count) is computed
// from the ledger and aggregator on each request; nothing is stored.
type PublicHandler struct {
    ListingRepo *repository.ListingRepo
    BookingRepo *repository.BookingRepo
    ReviewRepo  *repository.ReviewRepo
}

// NewPublicHandler constructs a PublicHandler.  All dependencies must
// be non-nil.
func NewPublicHandler(listings *repository.ListingRepo, bookings *repository.BookingRepo, reviews *repository.ReviewRepo) *PublicHandler {
    if listings == nil || bookings == nil || reviews == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{ListingRepo: listings, BookingRepo: bookings, ReviewRepo: reviews}
}

type dateRangeView struct {
    CheckIn  string `json:"check_in"`
    CheckOut string `json:"check_out"`
}

type amenityView struct {
    ID       uint64 `json:"id"`
    Category string `json:"category"`
    Name     string `json:"name"`
}

// GetListing handles GET /v1/listings/:id and assembles the full
// public projection of a listing.
func (h *PublicHandler) GetListing(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
    }
    ctx := c.Request().Context()
    listing, err := h.ListingRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrListingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load listing"})
    }

    today := model.Today()
    booked, err := h.BookingRepo.Availability(ctx, id, today)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load availability"})
    }
    upcoming, err := h.BookingRepo.CountUpcoming(ctx, id, today)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not count bookings"})
    }
    agg, err := h.ReviewRepo.AggregateFor(ctx, model.TargetListing, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load rating"})
    }
    amenities, err := h.ListingRepo.Amenities(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load amenities"})
    }

    ranges := make([]dateRangeView, 0, len(booked))
    for _, r := range booked {
        ranges = append(ranges, dateRangeView{
            CheckIn:  r.CheckIn.Format(model.DayLayout),
            CheckOut: r.CheckOut.Format(model.DayLayout),
        })
    }
    ams := make([]amenityView, 0, len(amenities))
    for _, a := range amenities {
        ams = append(ams, amenityView{ID: a.ID, Category: a.Category, Name: a.Name})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "id":                          listing.ID,
        "host_id":                     listing.HostID,
        "title":                       listing.Title,
        "description":                 listing.Description,
        "photo_url":                   listing.PhotoURL,
        "cost_per_night":              listing.CostPerNight(),
        "num_of_beds":                 listing.NumOfBeds,
        "location_type":               listing.LocationType,
        "amenities":                   ams,
        "overall_rating":              agg.Average(),
        "number_of_upcoming_bookings": upcoming,
        "currently_booked_dates":      ranges,
    })
}

// Quote handles GET /v1/listings/:id/quote?check_in=...&check_out=...
// and returns the total cost of a stay without committing anything.
func (h *PublicHandler) Quote(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
    }
    rng, err := parseDateRange(c.QueryParam("check_in"), c.QueryParam("check_out"))
    if err != nil || !rng.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range", "code": codeInvalidDateRange})
    }
    listing, err := h.ListingRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrListingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load listing"})
    }
    nights := rng.Nights()
    return c.JSON(http.StatusOK, echo.Map{
        "listing_id":     listing.ID,
        "nights":         nights,
        "cost_per_night": listing.CostPerNight(),
        "total_cost":     model.CentsToAmount(listing.TotalCostCents(nights)),
    })
}
