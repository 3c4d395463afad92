// Package repository defines error values shared across repositories.
// These sentinels let handlers distinguish recoverable, user-facing
// outcomes from infrastructure failures and translate them into the
// structured mutation response without ever aborting the request.
package repository

import "errors"

// ErrBookingConflict is returned by the booking ledger when the
// requested range overlaps an existing non-completed booking on the
// same listing.  Handlers surface this as a failed mutation, not a
// server error.
var ErrBookingConflict = errors.New("booking conflict")

// ErrInvalidDateRange is returned when a date range is malformed or
// logically impossible: unparseable days, check-in not before
// check-out, or a check-in in the past.
var ErrInvalidDateRange = errors.New("invalid date range")

// ErrInvalidSearchCriteria is returned for bad pagination or sort
// parameters (page < 1, limit < 1, unknown sort order).
var ErrInvalidSearchCriteria = errors.New("invalid search criteria")

// ErrInvalidRating is returned when a review score falls outside the
// closed range [1,5].
var ErrInvalidRating = errors.New("invalid rating")

// ErrDuplicateReview is returned when the author has already reviewed
// this target for this booking.  One review per author/target/booking.
var ErrDuplicateReview = errors.New("duplicate review")

// ErrNotAuthorized is returned when the caller lacks the required
// relationship to the target: reviewing a booking that is not theirs,
// reviewing before completion, or touching another host's listing.
var ErrNotAuthorized = errors.New("not authorized")

// ErrListingNotFound is returned when the referenced listing does not
// exist.
var ErrListingNotFound = errors.New("listing not found")

// ErrBookingNotFound is returned when the referenced booking does not
// exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")
