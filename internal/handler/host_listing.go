package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/model"
    "github.com/airnest/listing-reservation/internal/repository"
)

// HostHandler groups repositories for host-facing listing management.
// The JWT middleware guarantees the caller holds the HOST role.
type HostHandler struct {
    ListingRepo *repository.ListingRepo
    BookingRepo *repository.BookingRepo
}

// NewHostHandler constructs a HostHandler.  All dependencies must be
// non-nil.
func NewHostHandler(listings *repository.ListingRepo, bookings *repository.BookingRepo) *HostHandler {
    if listings == nil || bookings == nil {
        panic("nil repository passed to NewHostHandler")
    }
    return &HostHandler{ListingRepo: listings, BookingRepo: bookings}
}

// listingBody is the create payload.  Money arrives as a float at the
// boundary and is converted to cents immediately.
type listingBody struct {
    Title        string   `json:"title"`
    Description  string   `json:"description"`
    PhotoURL     string   `json:"photo_url"`
    CostPerNight float64  `json:"cost_per_night"`
    NumOfBeds    int      `json:"num_of_beds"`
    LocationType string   `json:"location_type"`
    AmenityIDs   []uint64 `json:"amenity_ids"`
}

type listingResp struct {
    ID           uint64   `json:"id"`
    HostID       uint64   `json:"host_id"`
    Title        string   `json:"title"`
    Description  string   `json:"description"`
    PhotoURL     string   `json:"photo_url"`
    CostPerNight float64  `json:"cost_per_night"`
    NumOfBeds    int      `json:"num_of_beds"`
    LocationType string   `json:"location_type"`
}

func validLocationType(t string) bool {
    switch t {
    case model.LocationSpaceship, model.LocationApartment, model.LocationHouse,
        model.LocationCampsite, model.LocationRoom:
        return true
    }
    return false
}

func newListingResp(l model.Listing) listingResp {
    return listingResp{
        ID:           l.ID,
        HostID:       l.HostID,
        Title:        l.Title,
        Description:  l.Description,
        PhotoURL:     l.PhotoURL,
        CostPerNight: l.CostPerNight(),
        NumOfBeds:    l.NumOfBeds,
        LocationType: l.LocationType,
    }
}

// CreateListing handles POST /v1/listings.
func (h *HostHandler) CreateListing(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body listingBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.Title = strings.TrimSpace(body.Title)
    body.LocationType = strings.ToUpper(strings.TrimSpace(body.LocationType))
    if body.Title == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
    }
    if body.CostPerNight <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost_per_night must be positive"})
    }
    if body.NumOfBeds < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "num_of_beds must be at least 1"})
    }
    if !validLocationType(body.LocationType) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown location_type"})
    }
    listing := &model.Listing{
        HostID:            hostID,
        Title:             body.Title,
        Description:       body.Description,
        PhotoURL:          body.PhotoURL,
        CostPerNightCents: model.AmountToCents(body.CostPerNight),
        NumOfBeds:         body.NumOfBeds,
        LocationType:      body.LocationType,
    }
    if err := h.ListingRepo.Create(c.Request().Context(), listing, body.AmenityIDs); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
    }
    return c.JSON(http.StatusCreated, newListingResp(*listing))
}

// UpdateListing handles PATCH /v1/listings/:id.  Unset input fields
// leave the stored values unchanged; only the owning host may update.
func (h *HostHandler) UpdateListing(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
    }
    var body struct {
        Title        *string  `json:"title"`
        Description  *string  `json:"description"`
        PhotoURL     *string  `json:"photo_url"`
        CostPerNight *float64 `json:"cost_per_night"`
        NumOfBeds    *int     `json:"num_of_beds"`
        LocationType *string  `json:"location_type"`
        AmenityIDs   []uint64 `json:"amenity_ids"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    upd := repository.ListingUpdate{
        Title:       body.Title,
        Description: body.Description,
        PhotoURL:    body.PhotoURL,
        AmenityIDs:  body.AmenityIDs,
    }
    if body.CostPerNight != nil {
        if *body.CostPerNight <= 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost_per_night must be positive"})
        }
        cents := model.AmountToCents(*body.CostPerNight)
        upd.CostPerNightCents = &cents
    }
    if body.NumOfBeds != nil && *body.NumOfBeds < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "num_of_beds must be at least 1"})
    }
    upd.NumOfBeds = body.NumOfBeds
    if body.LocationType != nil {
        lt := strings.ToUpper(strings.TrimSpace(*body.LocationType))
        if !validLocationType(lt) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown location_type"})
        }
        upd.LocationType = &lt
    }

    ctx := c.Request().Context()
    if err := h.ListingRepo.Update(ctx, id, hostID, upd); err != nil {
        switch err {
        case repository.ErrListingNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
        case repository.ErrNotAuthorized:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update listing"})
    }
    listing, err := h.ListingRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load listing"})
    }
    return c.JSON(http.StatusOK, newListingResp(listing))
}

// MyListings handles GET /v1/my-listings.
func (h *HostHandler) MyListings(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    listings, err := h.ListingRepo.ListByHost(c.Request().Context(), hostID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load listings"})
    }
    items := make([]listingResp, 0, len(listings))
    for _, l := range listings {
        items = append(items, newListingResp(l))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListingBookings handles GET /v1/listings/:id/bookings.  Only the
// owning host may see a listing's bookings.
func (h *HostHandler) ListingBookings(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
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
    if listing.HostID != hostID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    bookings, err := h.BookingRepo.ListByListing(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    today := model.Today()
    items := make([]*bookingView, 0, len(bookings))
    for _, b := range bookings {
        items = append(items, newBookingView(b, today))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
