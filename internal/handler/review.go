package handler

import (
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/model"
    "github.com/airnest/listing-reservation/internal/queue"
    "github.com/airnest/listing-reservation/internal/repository"
    publisher "github.com/airnest/listing-reservation/internal/service"
)

// ReviewHandler groups repositories for review submission and rating
// reads.  Reviews are only accepted for completed bookings and only
// from the guest or host actually involved.
type ReviewHandler struct {
    BookingRepo *repository.BookingRepo
    ListingRepo *repository.ListingRepo
    ReviewRepo  *repository.ReviewRepo
}

// NewReviewHandler constructs a ReviewHandler.  All dependencies must
// be non-nil.
func NewReviewHandler(bookings *repository.BookingRepo, listings *repository.ListingRepo, reviews *repository.ReviewRepo) *ReviewHandler {
    if bookings == nil || listings == nil || reviews == nil {
        panic("nil repository passed to NewReviewHandler")
    }
    return &ReviewHandler{BookingRepo: bookings, ListingRepo: listings, ReviewRepo: reviews}
}

type reviewBody struct {
    Rating int    `json:"rating"`
    Text   string `json:"text"`
}

// loadCompletedBooking fetches the booking and its listing and checks
// that the booking is COMPLETED.  The relationship check against the
// caller is the caller's own responsibility.
func (h *ReviewHandler) loadCompletedBooking(c echo.Context, bookingID uint64) (model.Booking, model.Listing, error) {
    ctx := c.Request().Context()
    booking, err := h.BookingRepo.GetByID(ctx, bookingID)
    if err != nil {
        return model.Booking{}, model.Listing{}, err
    }
    listing, err := h.ListingRepo.GetByID(ctx, booking.ListingID)
    if err != nil {
        return model.Booking{}, model.Listing{}, err
    }
    if booking.Range().StatusOn(model.Today()) != model.StatusCompleted {
        return model.Booking{}, model.Listing{}, repository.ErrNotAuthorized
    }
    return booking, listing, nil
}

func publishReview(c echo.Context, rev model.Review) {
    ev := queue.ReviewSubmittedEvent{
        ReviewID:    rev.ID,
        BookingID:   rev.BookingID,
        AuthorID:    rev.AuthorID,
        TargetKind:  rev.TargetKind,
        TargetID:    rev.TargetID,
        Rating:      rev.Rating,
        SubmittedAt: time.Now().UTC().Format(time.RFC3339),
    }
    if err := publisher.PublishReviewSubmitted(c.Request().Context(), ev); err != nil {
        log.Printf("review %d recorded but event publish failed: %v", rev.ID, err)
    }
}

// SubmitHostAndLocationReviews handles POST /v1/bookings/:id/reviews.
// The booking's guest submits one review of the host and one of the
// listing in a single call.  Both ratings are validated before either
// review is recorded.
func (h *ReviewHandler) SubmitHostAndLocationReviews(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body struct {
        HostReview     reviewBody `json:"host_review"`
        LocationReview reviewBody `json:"location_review"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    for _, rb := range []reviewBody{body.HostReview, body.LocationReview} {
        if rb.Rating < model.MinRating || rb.Rating > model.MaxRating {
            return mutationFailure(c, repository.ErrInvalidRating)
        }
    }

    booking, listing, err := h.loadCompletedBooking(c, bookingID)
    if err != nil {
        return mutationFailure(c, err)
    }
    if booking.GuestID != guestID {
        return mutationFailure(c, repository.ErrNotAuthorized)
    }

    location := model.Review{
        BookingID:  bookingID,
        AuthorID:   guestID,
        AuthorKind: model.AuthorGuest,
        TargetKind: model.TargetListing,
        TargetID:   listing.ID,
        Rating:     body.LocationReview.Rating,
        Text:       body.LocationReview.Text,
    }
    host := model.Review{
        BookingID:  bookingID,
        AuthorID:   guestID,
        AuthorKind: model.AuthorGuest,
        TargetKind: model.TargetHost,
        TargetID:   listing.HostID,
        Rating:     body.HostReview.Rating,
        Text:       body.HostReview.Text,
    }
    // Both reviews commit or neither does; a surviving half would make
    // the retry fail on its duplicate key.
    if err := h.ReviewRepo.CreatePair(c.Request().Context(), &location, &host); err != nil {
        return mutationFailure(c, err)
    }
    publishReview(c, location)
    publishReview(c, host)

    return c.JSON(http.StatusCreated, mutationResp{
        Code:    codeOK,
        Success: true,
        Message: "host and location reviews submitted",
        Reviews: []reviewView{newReviewView(host), newReviewView(location)},
    })
}

// SubmitGuestReview handles POST /v1/bookings/:id/guest-review.  The
// host of the booked listing reviews the guest.
func (h *ReviewHandler) SubmitGuestReview(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body reviewBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Rating < model.MinRating || body.Rating > model.MaxRating {
        return mutationFailure(c, repository.ErrInvalidRating)
    }

    booking, listing, err := h.loadCompletedBooking(c, bookingID)
    if err != nil {
        return mutationFailure(c, err)
    }
    if listing.HostID != hostID {
        return mutationFailure(c, repository.ErrNotAuthorized)
    }

    rev := model.Review{
        BookingID:  bookingID,
        AuthorID:   hostID,
        AuthorKind: model.AuthorHost,
        TargetKind: model.TargetGuest,
        TargetID:   booking.GuestID,
        Rating:     body.Rating,
        Text:       body.Text,
    }
    if err := h.ReviewRepo.Create(c.Request().Context(), &rev); err != nil {
        return mutationFailure(c, err)
    }
    publishReview(c, rev)

    view := newReviewView(rev)
    return c.JSON(http.StatusCreated, mutationResp{
        Code:    codeOK,
        Success: true,
        Message: "guest review submitted",
        Review:  &view,
    })
}

// BookingReviews handles GET /v1/bookings/:id/reviews.  Reviews are
// public once written; at most three exist per booking.
func (h *ReviewHandler) BookingReviews(c echo.Context) error {
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookingID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    revs, err := h.ReviewRepo.ListForBooking(c.Request().Context(), bookingID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
    }
    items := make([]reviewView, 0, len(revs))
    for _, rev := range revs {
        items = append(items, newReviewView(rev))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// HostRating handles GET /v1/hosts/:id/rating.  The rating composes
// direct host reviews with reviews of the host's listings; a host with
// no reviews anywhere reports a null rating, not zero.
func (h *ReviewHandler) HostRating(c echo.Context) error {
    hostID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || hostID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid host id"})
    }
    agg, err := h.ReviewRepo.HostAggregate(c.Request().Context(), hostID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rating"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "overall_rating": agg.Average(),
        "review_count":   agg.Count,
    })
}
