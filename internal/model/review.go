package model

import "time"

// Rating targets.  A review always points at exactly one target kind;
// host ratings additionally roll up LISTING aggregates for listings the
// host owns.
const (
    TargetListing = "LISTING"
    TargetHost    = "HOST"
    TargetGuest   = "GUEST"
)

// Author kinds.  The author of a review is either the booking's guest
// (host and location reviews) or the listing's host (guest review).
const (
    AuthorHost  = "HOST"
    AuthorGuest = "GUEST"
)

// Rating bounds for a single review.
const (
    MinRating = 1
    MaxRating = 5
)

// Review is an immutable rating with free text, attached to exactly one
// booking and one target.  Reviews can only be created once the booking
// is COMPLETED and are never updated or deleted afterwards.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – booking the review belongs to.
//  AuthorID   – user who wrote the review.
//  AuthorKind – HOST or GUEST.
//  TargetKind – LISTING, HOST or GUEST.
//  TargetID   – identity of the reviewed listing or user.
//  Rating     – integer score in [1,5].
//  Text       – free text body.
//  CreatedAt  – creation timestamp.
type Review struct {
    ID         uint64    // reviews.id
    BookingID  uint64    // reviews.booking_id
    AuthorID   uint64    // reviews.author_id
    AuthorKind string    // reviews.author_kind
    TargetKind string    // reviews.target_kind
    TargetID   uint64    // reviews.target_id
    Rating     int       // reviews.rating
    Text       string    // reviews.text
    CreatedAt  time.Time // reviews.created_at
}

// RatingAggregate holds the running {count, sum} for one rating target.
// It is updated in the same transaction that inserts a review and never
// decremented, since reviews are immutable.
type RatingAggregate struct {
    Count int64 // rating_aggregates.review_count
    Sum   int64 // rating_aggregates.rating_sum
}

// Add folds another aggregate into this one.  Used to compose a host's
// direct reviews with the aggregates of its listings.
func (a *RatingAggregate) Add(o RatingAggregate) {
    a.Count += o.Count
    a.Sum += o.Sum
}

// Average returns sum/count, or nil when no reviews exist.  "No data"
// is deliberately distinct from a zero rating.
func (a RatingAggregate) Average() *float64 {
    if a.Count == 0 {
        return nil
    }
    avg := float64(a.Sum) / float64(a.Count)
    return &avg
}
