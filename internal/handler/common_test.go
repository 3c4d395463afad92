package handler

import (
    "errors"
    "net/http"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/airnest/listing-reservation/internal/model"
    "github.com/airnest/listing-reservation/internal/repository"
)

func TestFailureStatusMapping(t *testing.T) {
    tests := []struct {
        err    error
        status int
        code   string
    }{
        {repository.ErrInvalidDateRange, http.StatusBadRequest, codeInvalidDateRange},
        {repository.ErrBookingConflict, http.StatusConflict, codeBookingConflict},
        {repository.ErrInvalidSearchCriteria, http.StatusBadRequest, codeInvalidSearch},
        {repository.ErrInvalidRating, http.StatusBadRequest, codeInvalidRating},
        {repository.ErrDuplicateReview, http.StatusConflict, codeDuplicateReview},
        {repository.ErrNotAuthorized, http.StatusForbidden, codeNotAuthorized},
        {repository.ErrListingNotFound, http.StatusNotFound, codeListingNotFound},
        {repository.ErrBookingNotFound, http.StatusNotFound, codeBookingNotFound},
        {errors.New("boom"), http.StatusInternalServerError, codeInternal},
    }
    for _, tc := range tests {
        t.Run(tc.code, func(t *testing.T) {
            status, code, msg := failureStatus(tc.err)
            assert.Equal(t, tc.status, status)
            assert.Equal(t, tc.code, code)
            assert.NotEmpty(t, msg)
        })
    }
}

func TestParseDateRange(t *testing.T) {
    rng, err := parseDateRange("2026-09-01", "2026-09-04")
    require.NoError(t, err)
    assert.Equal(t, 3, rng.Nights())

    _, err = parseDateRange("2026-09-01", "not-a-date")
    assert.ErrorIs(t, err, repository.ErrInvalidDateRange)

    _, err = parseDateRange("", "2026-09-04")
    assert.ErrorIs(t, err, repository.ErrInvalidDateRange)
}

func TestNewBookingViewDerivesStatus(t *testing.T) {
    b := model.Booking{
        ID:         7,
        ListingID:  3,
        GuestID:    9,
        CheckIn:    mustDay(t, "2026-09-10"),
        CheckOut:   mustDay(t, "2026-09-14"),
        TotalCents: 30000,
    }

    v := newBookingView(b, mustDay(t, "2026-09-01"))
    assert.Equal(t, string(model.StatusUpcoming), v.Status)
    assert.Equal(t, 300.0, v.TotalPrice)
    assert.Equal(t, "2026-09-10", v.CheckIn)
    assert.Equal(t, "2026-09-14", v.CheckOut)

    assert.Equal(t, string(model.StatusCurrent), newBookingView(b, mustDay(t, "2026-09-12")).Status)
    assert.Equal(t, string(model.StatusCompleted), newBookingView(b, mustDay(t, "2026-09-14")).Status)
}

func mustDay(t *testing.T, s string) time.Time {
    t.Helper()
    parsed, err := model.ParseDay(s)
    if err != nil {
        t.Fatalf("parse day %q: %v", s, err)
    }
    return parsed
}
