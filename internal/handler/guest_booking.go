package handler

import (
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/model"
    "github.com/airnest/listing-reservation/internal/queue"
    "github.com/airnest/listing-reservation/internal/repository"
    publisher "github.com/airnest/listing-reservation/internal/service"
)

// GuestHandler groups repositories for guest-facing booking and wallet
// endpoints.  JWT authentication and the GUEST role are enforced by
// middleware before any of these run.
type GuestHandler struct {
    ListingRepo *repository.ListingRepo
    BookingRepo *repository.BookingRepo
    UserRepo    *repository.UserRepo
}

// NewGuestHandler constructs a GuestHandler.  All dependencies must be
// non-nil.
func NewGuestHandler(listings *repository.ListingRepo, bookings *repository.BookingRepo, users *repository.UserRepo) *GuestHandler {
    if listings == nil || bookings == nil || users == nil {
        panic("nil repository passed to NewGuestHandler")
    }
    return &GuestHandler{ListingRepo: listings, BookingRepo: bookings, UserRepo: users}
}

// CreateBooking handles POST /v1/bookings.  It validates the requested
// range, delegates the atomic availability check and commit to the
// booking ledger and answers with the mutation envelope.  A conflict or
// a bad range is a failed mutation, never a hard failure of the call.
func (h *GuestHandler) CreateBooking(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        ListingID uint64 `json:"listing_id"`
        CheckIn   string `json:"check_in"`
        CheckOut  string `json:"check_out"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.ListingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id is required"})
    }
    rng, err := parseDateRange(body.CheckIn, body.CheckOut)
    if err != nil {
        return mutationFailure(c, err)
    }

    ctx := c.Request().Context()
    today := model.Today()
    booking, err := h.BookingRepo.Create(ctx, body.ListingID, guestID, rng, today)
    if err != nil {
        return mutationFailure(c, err)
    }

    // Best-effort event publish after the commit; broker trouble must
    // never fail the booking.
    ev := queue.BookingCreatedEvent{
        BookingID:  booking.ID,
        ListingID:  booking.ListingID,
        GuestID:    booking.GuestID,
        CheckIn:    booking.CheckIn.Format(model.DayLayout),
        CheckOut:   booking.CheckOut.Format(model.DayLayout),
        TotalCents: booking.TotalCents,
        CreatedAt:  time.Now().UTC().Format(time.RFC3339),
    }
    if err := publisher.PublishBookingCreated(ctx, ev); err != nil {
        log.Printf("booking %d created but event publish failed: %v", booking.ID, err)
    }

    return c.JSON(http.StatusCreated, mutationResp{
        Code:    codeOK,
        Success: true,
        Message: "booking created",
        Booking: newBookingView(*booking, today),
    })
}

// ListBookings handles GET /v1/my-bookings.  Statuses are derived from
// today's date at render time.
func (h *GuestHandler) ListBookings(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookings, err := h.BookingRepo.ListByGuest(c.Request().Context(), guestID)
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

// Wallet handles GET /v1/wallet and returns the guest's balance.
func (h *GuestHandler) Wallet(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    balance, err := h.UserRepo.Funds(c.Request().Context(), guestID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load balance"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "amount": model.CentsToAmount(balance),
    })
}

// AddFunds handles POST /v1/wallet/funds.  The amount is credited
// atomically and the new balance returned.
func (h *GuestHandler) AddFunds(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        Amount float64 `json:"amount"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    cents := model.AmountToCents(body.Amount)
    if cents <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
    }
    balance, err := h.UserRepo.AddFunds(c.Request().Context(), guestID, cents)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add funds"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "amount": model.CentsToAmount(balance),
    })
}
