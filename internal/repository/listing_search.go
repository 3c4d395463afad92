package repository

import (
    "context"
    "strings"
    "time"

    "github.com/airnest/listing-reservation/internal/model"
)

// Sort orders accepted by the listing search.
const (
    SortCostDesc = "COST_DESC"
    SortCostAsc  = "COST_ASC"
)

// Search defaults applied when the caller omits pagination or sorting.
const (
    DefaultSearchLimit = 5
    MaxSearchLimit     = 100
)

// SearchQuery defines filters & pagination for searching listings.
// CheckIn/CheckOut bound the requested stay; NumOfBeds is a minimum
// capacity filter when non-nil.  Today anchors the completed-booking
// cutoff and defaults to the current UTC day.
type SearchQuery struct {
    CheckIn   time.Time
    CheckOut  time.Time
    NumOfBeds *int
    Page      int
    Limit     int
    SortBy    string
    Today     time.Time
}

// Normalize applies defaults and validates pagination and sorting.
// Page and Limit of zero take their defaults; explicit values below 1
// and unknown sort orders are rejected with ErrInvalidSearchCriteria.
func (q *SearchQuery) Normalize() error {
    if q.Page == 0 {
        q.Page = 1
    }
    if q.Limit == 0 {
        q.Limit = DefaultSearchLimit
    }
    if q.SortBy == "" {
        q.SortBy = SortCostDesc
    }
    if q.Today.IsZero() {
        q.Today = model.Today()
    }
    q.SortBy = strings.ToUpper(strings.TrimSpace(q.SortBy))
    if q.Page < 1 || q.Limit < 1 {
        return ErrInvalidSearchCriteria
    }
    if q.SortBy != SortCostDesc && q.SortBy != SortCostAsc {
        return ErrInvalidSearchCriteria
    }
    if q.Limit > MaxSearchLimit {
        q.Limit = MaxSearchLimit
    }
    return nil
}

// ListingRow is the public projection of a listing returned by search.
type ListingRow struct {
    ID            uint64  `json:"id"`
    HostID        uint64  `json:"host_id"`
    Title         string  `json:"title"`
    PhotoURL      string  `json:"photo_url"`
    NumOfBeds     int     `json:"num_of_beds"`
    LocationType  string  `json:"location_type"`
    CostCents     int64   `json:"cost_per_night_cents"`
    CostPerNight  float64 `json:"cost_per_night"`
    OverallRating *float64 `json:"overall_rating"`
}

// SearchAvailable returns the page of listings that fit the criteria
// and are free for the requested range, plus the total match count.
// Availability is enforced with an anti-join against the booking
// ledger: a listing is excluded when any booking overlaps the range
// (half-open, so boundary touches do not exclude).  Results are sorted
// by nightly cost with listing ID as tiebreaker for determinism; an
// out-of-range page yields an empty slice, never an error.
func (r *ListingRepo) SearchAvailable(ctx context.Context, q SearchQuery) ([]ListingRow, int64, error) {
    // Only non-completed bookings block availability: a booking that
    // already checked out never excludes a listing, even when the
    // requested range lies in the past.
    where := []string{`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.listing_id = l.id
			  AND b.check_in < ?
			  AND b.check_out > ?
			  AND b.check_out > ?
		)`}
    args := []any{q.CheckOut, q.CheckIn, q.Today}

    if q.NumOfBeds != nil {
        where = append(where, "l.num_of_beds >= ?")
        args = append(args, *q.NumOfBeds)
    }
    cond := strings.Join(where, " AND ")

    var total int64
    countSQL := `SELECT COUNT(*) FROM listings l WHERE ` + cond
    if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    order := "l.cost_per_night_cents DESC, l.id ASC"
    if q.SortBy == SortCostAsc {
        order = "l.cost_per_night_cents ASC, l.id ASC"
    }

    limit := q.Limit
    offset := (q.Page - 1) * q.Limit

    dataSQL := `SELECT
			l.id,
			l.host_id,
			l.title,
			l.photo_url,
			l.num_of_beds,
			l.location_type,
			l.cost_per_night_cents,
			ra.rating_sum,
			ra.review_count
		FROM listings l
		LEFT JOIN rating_aggregates ra
			ON ra.target_kind = 'LISTING' AND ra.target_id = l.id
		WHERE ` + cond + `
		ORDER BY ` + order + `
		LIMIT ? OFFSET ?`

    argsData := append(append([]any{}, args...), limit, offset)

    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]ListingRow, 0, limit)
    for rows.Next() {
        var d ListingRow
        var sum, count *int64
        if err := rows.Scan(
            &d.ID,
            &d.HostID,
            &d.Title,
            &d.PhotoURL,
            &d.NumOfBeds,
            &d.LocationType,
            &d.CostCents,
            &sum,
            &count,
        ); err != nil {
            return nil, 0, err
        }
        d.CostPerNight = model.CentsToAmount(d.CostCents)
        if sum != nil && count != nil {
            agg := model.RatingAggregate{Count: *count, Sum: *sum}
            d.OverallRating = agg.Average()
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}
