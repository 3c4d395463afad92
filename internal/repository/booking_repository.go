package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/airnest/listing-reservation/internal/model"
)

// BookingRepo is the booking ledger: the sole authority for committing
// new bookings against a listing and for answering availability
// queries.  Bookings are append-only; nothing here updates or deletes
// a committed row.  All date columns are DATE values interpreted as
// midnight UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Availability returns every non-completed (CURRENT or UPCOMING)
// reserved range for a listing, ascending by check-in date.  Search and
// the currentlyBookedDates read both derive from this query, so there
// is no stored availability state to drift.
func (r *BookingRepo) Availability(ctx context.Context, listingID uint64, today time.Time) ([]model.DateRange, error) {
    const q = `SELECT check_in, check_out
               FROM bookings
               WHERE listing_id = ? AND check_out > ?
               ORDER BY check_in ASC`
    rows, err := r.db.QueryContext(ctx, q, listingID, today)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.DateRange, 0)
    for rows.Next() {
        var rng model.DateRange
        if err := rows.Scan(&rng.CheckIn, &rng.CheckOut); err != nil {
            return nil, err
        }
        out = append(out, rng)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create validates and commits a new booking.  The read-check-write
// sequence runs inside one transaction with the listing row locked
// (SELECT ... FOR UPDATE), so two concurrent commits for the same
// listing serialize at the row lock and can never both succeed with
// overlapping ranges.  Commits against different listings take
// different row locks and do not contend.
//
// Returned errors: ErrInvalidDateRange for a malformed range or a
// check-in before today, ErrListingNotFound when the listing does not
// exist, ErrBookingConflict when the range overlaps an existing
// booking.  All other errors are infrastructure failures.
func (r *BookingRepo) Create(ctx context.Context, listingID, guestID uint64, rng model.DateRange, today time.Time) (*model.Booking, error) {
    if !rng.Valid() || rng.CheckIn.Before(today) {
        return nil, ErrInvalidDateRange
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Lock the listing row.  This is the per-listing critical section;
    // it also confirms the listing exists and yields the nightly price.
    var costPerNight int64
    const lockQ = `SELECT cost_per_night_cents FROM listings WHERE id = ? FOR UPDATE`
    if err := tx.QueryRowContext(ctx, lockQ, listingID).Scan(&costPerNight); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrListingNotFound
        }
        return nil, err
    }

    // Overlap check against every existing booking.  Half-open ranges:
    // a booking whose check-out equals our check-in does not conflict.
    // A completed booking can never overlap a range starting today or
    // later, so no status filter is needed here.
    var conflicts int
    const overlapQ = `SELECT COUNT(*) FROM bookings
                      WHERE listing_id = ? AND check_in < ? AND check_out > ?`
    if err := tx.QueryRowContext(ctx, overlapQ, listingID, rng.CheckOut, rng.CheckIn).Scan(&conflicts); err != nil {
        return nil, err
    }
    if conflicts > 0 {
        return nil, ErrBookingConflict
    }

    total := costPerNight * int64(rng.Nights())
    const ins = `INSERT INTO bookings (listing_id, guest_id, check_in, check_out, total_cents)
                 VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, ins, listingID, guestID, rng.CheckIn, rng.CheckOut, total)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return &model.Booking{
        ID:         uint64(id),
        ListingID:  listingID,
        GuestID:    guestID,
        CheckIn:    rng.CheckIn,
        CheckOut:   rng.CheckOut,
        TotalCents: total,
        CreatedAt:  time.Now().UTC(),
    }, nil
}

// GetByID loads a single booking.  Returns ErrBookingNotFound when no
// row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
    const q = `SELECT id, listing_id, guest_id, check_in, check_out, total_cents, created_at
               FROM bookings WHERE id = ?`
    var b model.Booking
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &b.ID, &b.ListingID, &b.GuestID, &b.CheckIn, &b.CheckOut, &b.TotalCents, &b.CreatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, ErrBookingNotFound
    }
    return b, err
}

// ListByGuest returns all bookings made by a guest, newest first.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Booking, error) {
    const q = `SELECT id, listing_id, guest_id, check_in, check_out, total_cents, created_at
               FROM bookings WHERE guest_id = ? ORDER BY created_at DESC`
    return r.list(ctx, q, guestID)
}

// ListByListing returns all bookings on a listing ascending by
// check-in, for the owning host's view.
func (r *BookingRepo) ListByListing(ctx context.Context, listingID uint64) ([]model.Booking, error) {
    const q = `SELECT id, listing_id, guest_id, check_in, check_out, total_cents, created_at
               FROM bookings WHERE listing_id = ? ORDER BY check_in ASC`
    return r.list(ctx, q, listingID)
}

// CountUpcoming counts ledger entries classified UPCOMING or CURRENT
// at call time.  This is a derived query, not a stored counter.
func (r *BookingRepo) CountUpcoming(ctx context.Context, listingID uint64, today time.Time) (int, error) {
    const q = `SELECT COUNT(*) FROM bookings WHERE listing_id = ? AND check_out > ?`
    var n int
    err := r.db.QueryRowContext(ctx, q, listingID, today).Scan(&n)
    return n, err
}

func (r *BookingRepo) list(ctx context.Context, q string, arg uint64) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, q, arg)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(&b.ID, &b.ListingID, &b.GuestID, &b.CheckIn, &b.CheckOut, &b.TotalCents, &b.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
