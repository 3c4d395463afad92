package model

import "time"

// DayLayout is the wire format for calendar days.  All check-in and
// check-out values are whole days; there is no time-of-day component
// anywhere in the booking core.
const DayLayout = "2006-01-02"

// BookingStatus is derived from a booking's date range and the current
// date.  It is never stored: "today" moves without any write occurring,
// so the status is recomputed on every read.
type BookingStatus string

const (
    StatusUpcoming  BookingStatus = "UPCOMING"
    StatusCurrent   BookingStatus = "CURRENT"
    StatusCompleted BookingStatus = "COMPLETED"
)

// DateRange is a half-open interval of calendar days: the guest occupies
// the nights from CheckIn (inclusive) up to CheckOut (exclusive).  A
// range where CheckIn == CheckOut contains zero nights and is invalid.
type DateRange struct {
    CheckIn  time.Time // first occupied day
    CheckOut time.Time // day of departure (not occupied)
}

// Valid reports whether the range is well-formed, i.e. contains at
// least one night.
func (r DateRange) Valid() bool { return r.CheckIn.Before(r.CheckOut) }

// Nights returns the number of nights covered by the range.  The result
// is only meaningful for a valid range.
func (r DateRange) Nights() int {
    return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share any night.  Two
// ranges that merely touch at a boundary do not overlap: a guest may
// check out the same day another checks in.
func (r DateRange) Overlaps(o DateRange) bool {
    return r.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(r.CheckOut)
}

// StatusOn classifies the range relative to the given day.  COMPLETED
// when today is on or after check-out, CURRENT when today falls inside
// the range, UPCOMING otherwise.
func (r DateRange) StatusOn(today time.Time) BookingStatus {
    switch {
    case !today.Before(r.CheckOut):
        return StatusCompleted
    case !today.Before(r.CheckIn):
        return StatusCurrent
    default:
        return StatusUpcoming
    }
}

// Today returns the current calendar day truncated to midnight UTC.
// All date comparisons in the booking core go through this single
// definition of "today".
func Today() time.Time {
    now := time.Now().UTC()
    return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD day string into a midnight-UTC time.
func ParseDay(s string) (time.Time, error) {
    return time.Parse(DayLayout, s)
}

// Booking records a guest's reservation of a listing for a date range.
// Bookings are immutable once created: the range, the price and the
// participants never change, and bookings are never deleted.  Status is
// intentionally absent from the struct; call Range().StatusOn to derive
// it at read time.
//
// Fields:
//  ID         – primary key identifier.
//  ListingID  – listing being booked.
//  GuestID    – guest who made the booking.
//  CheckIn    – first occupied day (bookings.check_in, DATE column).
//  CheckOut   – departure day (bookings.check_out, DATE column).
//  TotalCents – total price in cents for the whole stay.
//  CreatedAt  – creation timestamp.
type Booking struct {
    ID         uint64    // bookings.id
    ListingID  uint64    // bookings.listing_id
    GuestID    uint64    // bookings.guest_id
    CheckIn    time.Time // bookings.check_in
    CheckOut   time.Time // bookings.check_out
    TotalCents int64     // bookings.total_cents
    CreatedAt  time.Time // bookings.created_at
}

// Range returns the booking's date range.
func (b Booking) Range() DateRange { return DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut} }
