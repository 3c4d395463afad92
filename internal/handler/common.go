package handler // handler defines http handlers

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/model"
    "github.com/airnest/listing-reservation/internal/repository"
)

// Mutation response codes.  Every mutation endpoint answers with the
// same envelope so callers always receive a structured outcome, never
// an aborted request.
const (
    codeOK                = "OK"
    codeInvalidDateRange  = "INVALID_DATE_RANGE"
    codeBookingConflict   = "BOOKING_CONFLICT"
    codeInvalidSearch     = "INVALID_SEARCH_CRITERIA"
    codeInvalidRating     = "INVALID_RATING"
    codeDuplicateReview   = "DUPLICATE_REVIEW"
    codeNotAuthorized     = "NOT_AUTHORIZED"
    codeListingNotFound   = "LISTING_NOT_FOUND"
    codeBookingNotFound   = "BOOKING_NOT_FOUND"
    codeInternal          = "INTERNAL_ERROR"
)

// mutationResp is the envelope returned by booking and review
// mutations.  Exactly one of the payload pointers is set on success.
type mutationResp struct {
    Code    string        `json:"code"`
    Success bool          `json:"success"`
    Message string        `json:"message"`
    Booking *bookingView  `json:"booking,omitempty"`
    Review  *reviewView   `json:"review,omitempty"`
    Reviews []reviewView  `json:"reviews,omitempty"`
}

// bookingView is the JSON shape of a booking.  Status is derived at
// render time and the total is converted from cents at the boundary.
type bookingView struct {
    ID         uint64  `json:"id"`
    ListingID  uint64  `json:"listing_id"`
    GuestID    uint64  `json:"guest_id"`
    CheckIn    string  `json:"check_in"`
    CheckOut   string  `json:"check_out"`
    TotalPrice float64 `json:"total_price"`
    Status     string  `json:"status"`
}

type reviewView struct {
    ID         uint64  `json:"id"`
    BookingID  uint64  `json:"booking_id"`
    AuthorID   uint64  `json:"author_id"`
    AuthorKind string  `json:"author_kind"`
    TargetKind string  `json:"target_kind"`
    TargetID   uint64  `json:"target_id"`
    Rating     int     `json:"rating"`
    Text       string  `json:"text"`
}

func newBookingView(b model.Booking, today time.Time) *bookingView {
    return &bookingView{
        ID:         b.ID,
        ListingID:  b.ListingID,
        GuestID:    b.GuestID,
        CheckIn:    b.CheckIn.Format(model.DayLayout),
        CheckOut:   b.CheckOut.Format(model.DayLayout),
        TotalPrice: model.CentsToAmount(b.TotalCents),
        Status:     string(b.Range().StatusOn(today)),
    }
}

func newReviewView(rev model.Review) reviewView {
    return reviewView{
        ID:         rev.ID,
        BookingID:  rev.BookingID,
        AuthorID:   rev.AuthorID,
        AuthorKind: rev.AuthorKind,
        TargetKind: rev.TargetKind,
        TargetID:   rev.TargetID,
        Rating:     rev.Rating,
        Text:       rev.Text,
    }
}

// failureStatus maps a repository sentinel to the HTTP status and
// mutation code of a failed-but-well-formed outcome.  Unknown errors
// map to a 500 with INTERNAL_ERROR.
func failureStatus(err error) (int, string, string) {
    switch {
    case errors.Is(err, repository.ErrInvalidDateRange):
        return 400, codeInvalidDateRange, "check-in must be today or later and before check-out"
    case errors.Is(err, repository.ErrBookingConflict):
        return 409, codeBookingConflict, "the requested dates overlap an existing booking"
    case errors.Is(err, repository.ErrInvalidSearchCriteria):
        return 400, codeInvalidSearch, "page and limit must be positive and sortBy must be COST_ASC or COST_DESC"
    case errors.Is(err, repository.ErrInvalidRating):
        return 400, codeInvalidRating, "rating must be between 1 and 5"
    case errors.Is(err, repository.ErrDuplicateReview):
        return 409, codeDuplicateReview, "this target was already reviewed for this booking"
    case errors.Is(err, repository.ErrNotAuthorized):
        return 403, codeNotAuthorized, "caller lacks the required relationship to the target"
    case errors.Is(err, repository.ErrListingNotFound):
        return 404, codeListingNotFound, "listing not found"
    case errors.Is(err, repository.ErrBookingNotFound):
        return 404, codeBookingNotFound, "booking not found"
    default:
        return 500, codeInternal, "unexpected failure"
    }
}

// mutationFailure writes the failure envelope for err.
func mutationFailure(c echo.Context, err error) error {
    status, code, msg := failureStatus(err)
    return c.JSON(status, mutationResp{Code: code, Success: false, Message: msg})
}

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWTAuth stores the claim as whatever type the JSON decoder
// produced, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// parseDateRange converts two YYYY-MM-DD strings into a DateRange.
// Unparseable values surface as ErrInvalidDateRange; logical validity
// (check-in before check-out, not in the past) is checked downstream.
func parseDateRange(checkIn, checkOut string) (model.DateRange, error) {
    in, err := model.ParseDay(checkIn)
    if err != nil {
        return model.DateRange{}, repository.ErrInvalidDateRange
    }
    out, err := model.ParseDay(checkOut)
    if err != nil {
        return model.DateRange{}, repository.ErrInvalidDateRange
    }
    return model.DateRange{CheckIn: in, CheckOut: out}, nil
}
