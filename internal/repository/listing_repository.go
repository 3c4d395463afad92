package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/airnest/listing-reservation/internal/model"
)

// ListingRepo provides persistence for listings and their amenity
// links.  Listings belong to exactly one host and are never deleted;
// updates are partial, leaving unset fields untouched.
type ListingRepo struct {
    db *sql.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// ListingUpdate carries the optional fields of a partial update.  A nil
// pointer means "leave the stored value unchanged".
type ListingUpdate struct {
    Title             *string
    Description       *string
    PhotoURL          *string
    CostPerNightCents *int64
    NumOfBeds         *int
    LocationType      *string
    AmenityIDs        []uint64 // nil leaves links unchanged; empty slice clears them
}

// Create inserts a listing and its amenity links and populates the
// generated ID on the provided model.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing, amenityIDs []uint64) error {
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
    const q = `INSERT INTO listings (host_id, title, description, photo_url, cost_per_night_cents, num_of_beds, location_type)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, l.HostID, l.Title, l.Description, l.PhotoURL, l.CostPerNightCents, l.NumOfBeds, l.LocationType)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    l.ID = uint64(id)
    if err := replaceAmenitiesTx(ctx, tx, l.ID, amenityIDs); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Update applies a partial update to a listing owned by hostID.  Fields
// left nil in upd keep their stored values.  Returns ErrListingNotFound
// when the listing does not exist and ErrNotAuthorized when it belongs
// to a different host.
func (r *ListingRepo) Update(ctx context.Context, listingID, hostID uint64, upd ListingUpdate) error {
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
    var owner uint64
    if err := tx.QueryRowContext(ctx, `SELECT host_id FROM listings WHERE id = ? FOR UPDATE`, listingID).Scan(&owner); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrListingNotFound
        }
        return err
    }
    if owner != hostID {
        return ErrNotAuthorized
    }

    set := []string{}
    args := []any{}
    if upd.Title != nil {
        set = append(set, "title = ?")
        args = append(args, *upd.Title)
    }
    if upd.Description != nil {
        set = append(set, "description = ?")
        args = append(args, *upd.Description)
    }
    if upd.PhotoURL != nil {
        set = append(set, "photo_url = ?")
        args = append(args, *upd.PhotoURL)
    }
    if upd.CostPerNightCents != nil {
        set = append(set, "cost_per_night_cents = ?")
        args = append(args, *upd.CostPerNightCents)
    }
    if upd.NumOfBeds != nil {
        set = append(set, "num_of_beds = ?")
        args = append(args, *upd.NumOfBeds)
    }
    if upd.LocationType != nil {
        set = append(set, "location_type = ?")
        args = append(args, *upd.LocationType)
    }
    if len(set) > 0 {
        q := `UPDATE listings SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
        args = append(args, listingID)
        if _, err := tx.ExecContext(ctx, q, args...); err != nil {
            return err
        }
    }
    if upd.AmenityIDs != nil {
        if err := replaceAmenitiesTx(ctx, tx, listingID, upd.AmenityIDs); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetByID loads a single listing.  Returns ErrListingNotFound when no
// row exists.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (model.Listing, error) {
    const q = `SELECT id, host_id, title, description, photo_url, cost_per_night_cents, num_of_beds, location_type, created_at, updated_at
               FROM listings WHERE id = ?`
    var l model.Listing
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &l.ID, &l.HostID, &l.Title, &l.Description, &l.PhotoURL,
        &l.CostPerNightCents, &l.NumOfBeds, &l.LocationType, &l.CreatedAt, &l.UpdatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return model.Listing{}, ErrListingNotFound
    }
    return l, err
}

// ListByHost returns every listing owned by a host, oldest first.
func (r *ListingRepo) ListByHost(ctx context.Context, hostID uint64) ([]model.Listing, error) {
    const q = `SELECT id, host_id, title, description, photo_url, cost_per_night_cents, num_of_beds, location_type, created_at, updated_at
               FROM listings WHERE host_id = ? ORDER BY id ASC`
    rows, err := r.db.QueryContext(ctx, q, hostID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Listing, 0)
    for rows.Next() {
        var l model.Listing
        if err := rows.Scan(&l.ID, &l.HostID, &l.Title, &l.Description, &l.PhotoURL,
            &l.CostPerNightCents, &l.NumOfBeds, &l.LocationType, &l.CreatedAt, &l.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Amenities returns the amenity records linked to a listing, ordered by
// category then name for deterministic output.
func (r *ListingRepo) Amenities(ctx context.Context, listingID uint64) ([]model.Amenity, error) {
    const q = `SELECT a.id, a.category, a.name
               FROM listing_amenities la
               JOIN amenities a ON a.id = la.amenity_id
               WHERE la.listing_id = ?
               ORDER BY a.category, a.name`
    rows, err := r.db.QueryContext(ctx, q, listingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Amenity, 0)
    for rows.Next() {
        var a model.Amenity
        if err := rows.Scan(&a.ID, &a.Category, &a.Name); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// replaceAmenitiesTx rewrites a listing's amenity links inside the
// given transaction.  The amenity catalog itself is referenced, never
// modified here.
func replaceAmenitiesTx(ctx context.Context, tx *sql.Tx, listingID uint64, amenityIDs []uint64) error {
    if _, err := tx.ExecContext(ctx, `DELETE FROM listing_amenities WHERE listing_id = ?`, listingID); err != nil {
        return err
    }
    if len(amenityIDs) == 0 {
        return nil
    }
    query := `INSERT INTO listing_amenities (listing_id, amenity_id) VALUES `
    args := make([]any, 0, len(amenityIDs)*2)
    for i, id := range amenityIDs {
        if i > 0 {
            query += ","
        }
        query += "(?, ?)"
        args = append(args, listingID, id)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}
