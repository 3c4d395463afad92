package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/airnest/listing-reservation/internal/model"
)

// ReviewRepo persists reviews and maintains the running rating
// aggregates.  A review insert and its {count, sum} update happen in
// one transaction, so readers never observe a review without its
// aggregate contribution or vice versa.  Aggregates are never
// decremented: reviews are immutable and have no retraction path.
type ReviewRepo struct {
    db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create validates the rating, inserts the review and folds it into the
// target's aggregate.  Returns ErrInvalidRating for an out-of-bounds
// score and ErrDuplicateReview when the author already reviewed this
// target for this booking (unique key on booking/target/author).
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
    return r.createAll(ctx, rev)
}

// CreatePair inserts two reviews and both aggregate updates in one
// transaction.  The paired guest submission (host review + location
// review) goes through here so a failure on either leaves neither
// behind; a half-submitted pair would block the retry on the duplicate
// key of whichever half survived.
func (r *ReviewRepo) CreatePair(ctx context.Context, first, second *model.Review) error {
    return r.createAll(ctx, first, second)
}

func (r *ReviewRepo) createAll(ctx context.Context, revs ...*model.Review) error {
    for _, rev := range revs {
        if rev.Rating < model.MinRating || rev.Rating > model.MaxRating {
            return ErrInvalidRating
        }
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    for _, rev := range revs {
        if err := insertReviewTx(ctx, tx, rev); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// insertReviewTx inserts one review and folds it into its target's
// aggregate inside the given transaction.  The upsert is a single
// statement, so the read-modify-write on {count, sum} is atomic per
// target row.
func insertReviewTx(ctx context.Context, tx *sql.Tx, rev *model.Review) error {
    const ins = `INSERT INTO reviews (booking_id, author_id, author_kind, target_kind, target_id, rating, text)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, ins,
        rev.BookingID, rev.AuthorID, rev.AuthorKind, rev.TargetKind, rev.TargetID, rev.Rating, rev.Text)
    if err != nil {
        if strings.Contains(err.Error(), "1062") {
            return ErrDuplicateReview
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rev.ID = uint64(id)

    const upsert = `INSERT INTO rating_aggregates (target_kind, target_id, review_count, rating_sum)
                    VALUES (?, ?, 1, ?)
                    ON DUPLICATE KEY UPDATE
                        review_count = review_count + 1,
                        rating_sum   = rating_sum + VALUES(rating_sum)`
    _, err = tx.ExecContext(ctx, upsert, rev.TargetKind, rev.TargetID, rev.Rating)
    return err
}

// AggregateFor returns the {count, sum} pair for one target.  A target
// with no reviews yields the zero aggregate, whose Average is nil.
func (r *ReviewRepo) AggregateFor(ctx context.Context, targetKind string, targetID uint64) (model.RatingAggregate, error) {
    const q = `SELECT COALESCE(review_count, 0), COALESCE(rating_sum, 0)
               FROM rating_aggregates WHERE target_kind = ? AND target_id = ?`
    var agg model.RatingAggregate
    err := r.db.QueryRowContext(ctx, q, targetKind, targetID).Scan(&agg.Count, &agg.Sum)
    if err == sql.ErrNoRows {
        return model.RatingAggregate{}, nil
    }
    return agg, err
}

// HostAggregate composes a host's rating from reviews targeting the
// host directly and reviews targeting any of the host's listings, so a
// single overall rating can be exposed per host.
func (r *ReviewRepo) HostAggregate(ctx context.Context, hostID uint64) (model.RatingAggregate, error) {
    const q = `SELECT COALESCE(SUM(ra.review_count), 0), COALESCE(SUM(ra.rating_sum), 0)
               FROM rating_aggregates ra
               WHERE (ra.target_kind = 'HOST' AND ra.target_id = ?)
                  OR (ra.target_kind = 'LISTING' AND ra.target_id IN
                      (SELECT id FROM listings WHERE host_id = ?))`
    var agg model.RatingAggregate
    err := r.db.QueryRowContext(ctx, q, hostID, hostID).Scan(&agg.Count, &agg.Sum)
    return agg, err
}

// ListForBooking returns the reviews attached to a booking (at most
// three: host, location and guest review), oldest first.
func (r *ReviewRepo) ListForBooking(ctx context.Context, bookingID uint64) ([]model.Review, error) {
    const q = `SELECT id, booking_id, author_id, author_kind, target_kind, target_id, rating, text, created_at
               FROM reviews WHERE booking_id = ? ORDER BY id ASC`
    rows, err := r.db.QueryContext(ctx, q, bookingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Review, 0, 3)
    for rows.Next() {
        var rev model.Review
        if err := rows.Scan(&rev.ID, &rev.BookingID, &rev.AuthorID, &rev.AuthorKind,
            &rev.TargetKind, &rev.TargetID, &rev.Rating, &rev.Text, &rev.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, rev)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
