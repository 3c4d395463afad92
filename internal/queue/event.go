// Package queue defines the message payloads exchanged over the broker
// and the background consumer that drains them.
package queue

// BookingCreatedEvent is published after a booking is admitted.  It
// carries enough detail for downstream consumers (notifications,
// analytics) to act without querying the primary database.
type BookingCreatedEvent struct {
    BookingID  uint64 `json:"booking_id"`
    ListingID  uint64 `json:"listing_id"`
    GuestID    uint64 `json:"guest_id"`
    CheckIn    string `json:"check_in"`
    CheckOut   string `json:"check_out"`
    TotalCents int64  `json:"total_cents"`
    CreatedAt  string `json:"created_at"`
}

// ReviewSubmittedEvent is published for each review written after a
// completed stay, one event per target (listing, host or guest).
type ReviewSubmittedEvent struct {
    ReviewID    uint64 `json:"review_id"`
    BookingID   uint64 `json:"booking_id"`
    AuthorID    uint64 `json:"author_id"`
    TargetKind  string `json:"target_kind"`
    TargetID    uint64 `json:"target_id"`
    Rating      int    `json:"rating"`
    SubmittedAt string `json:"submitted_at"`
}
