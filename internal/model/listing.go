package model

import (
    "math"
    "time"
)

// LocationType categorises a listing.  The set mirrors the catalog's
// public contract and is validated at the handler layer.
const (
    LocationSpaceship = "SPACESHIP"
    LocationApartment = "APARTMENT"
    LocationHouse     = "HOUSE"
    LocationCampsite  = "CAMPSITE"
    LocationRoom      = "ROOM"
)

// Listing represents a rentable property owned by exactly one host.
// Monetary values are stored as integer cents; floating point appears
// only in JSON responses.
//
// Fields:
//  ID                – primary key identifier.
//  HostID            – owning host.
//  Title             – short display title.
//  Description       – free text description.
//  PhotoURL          – thumbnail URL, may be empty.
//  CostPerNightCents – nightly price in cents.
//  NumOfBeds         – sleeping capacity.
//  LocationType      – one of the Location* constants.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Listing struct {
    ID                uint64    // listings.id
    HostID            uint64    // listings.host_id
    Title             string    // listings.title
    Description       string    // listings.description
    PhotoURL          string    // listings.photo_url
    CostPerNightCents int64     // listings.cost_per_night_cents
    NumOfBeds         int       // listings.num_of_beds
    LocationType      string    // listings.location_type
    CreatedAt         time.Time // listings.created_at
    UpdatedAt         time.Time // listings.updated_at
}

// CostPerNight returns the nightly price in currency units for the
// response boundary.
func (l Listing) CostPerNight() float64 { return CentsToAmount(l.CostPerNightCents) }

// TotalCostCents computes the price of a stay of the given number of
// nights.  Callers must validate nights >= 1 first.
func (l Listing) TotalCostCents(nights int) int64 {
    return l.CostPerNightCents * int64(nights)
}

// Amenity is a referenced catalog entry; listings link to amenities
// many-to-many and do not own their lifecycle.
type Amenity struct {
    ID       uint64 // amenities.id
    Category string // amenities.category
    Name     string // amenities.name
}

// CentsToAmount converts integer cents to a float for JSON output.
func CentsToAmount(cents int64) float64 { return float64(cents) / 100.0 }

// AmountToCents converts a boundary float into integer cents, rounding
// to the nearest cent.  All storage and arithmetic happen on the cents
// value; the float never propagates further in.
func AmountToCents(amount float64) int64 { return int64(math.Round(amount * 100)) }
