package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
    t.Helper()
    d, err := ParseDay(s)
    require.NoError(t, err)
    return d
}

func rng(t *testing.T, in, out string) DateRange {
    t.Helper()
    return DateRange{CheckIn: day(t, in), CheckOut: day(t, out)}
}

func TestDateRangeValid(t *testing.T) {
    assert.True(t, rng(t, "2026-09-01", "2026-09-04").Valid())
    assert.False(t, rng(t, "2026-09-01", "2026-09-01").Valid(), "zero nights")
    assert.False(t, rng(t, "2026-09-04", "2026-09-01").Valid(), "inverted")
}

func TestDateRangeNights(t *testing.T) {
    assert.Equal(t, 3, rng(t, "2026-09-01", "2026-09-04").Nights())
    assert.Equal(t, 1, rng(t, "2026-09-01", "2026-09-02").Nights())
    // spans a month boundary
    assert.Equal(t, 4, rng(t, "2026-08-30", "2026-09-03").Nights())
}

func TestDateRangeOverlaps(t *testing.T) {
    base := rng(t, "2026-09-10", "2026-09-14")

    tests := []struct {
        name    string
        other   DateRange
        overlap bool
    }{
        {"identical", rng(t, "2026-09-10", "2026-09-14"), true},
        {"contained", rng(t, "2026-09-11", "2026-09-13"), true},
        {"straddles start", rng(t, "2026-09-08", "2026-09-11"), true},
        {"straddles end", rng(t, "2026-09-13", "2026-09-16"), true},
        {"touches at check-out", rng(t, "2026-09-14", "2026-09-18"), false},
        {"touches at check-in", rng(t, "2026-09-06", "2026-09-10"), false},
        {"disjoint before", rng(t, "2026-09-01", "2026-09-05"), false},
        {"disjoint after", rng(t, "2026-09-20", "2026-09-22"), false},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.overlap, base.Overlaps(tc.other))
            assert.Equal(t, tc.overlap, tc.other.Overlaps(base), "overlap must be symmetric")
        })
    }
}

func TestDateRangeStatusOn(t *testing.T) {
    r := rng(t, "2026-09-10", "2026-09-14")

    assert.Equal(t, StatusUpcoming, r.StatusOn(day(t, "2026-09-09")))
    assert.Equal(t, StatusCurrent, r.StatusOn(day(t, "2026-09-10")), "check-in day is occupied")
    assert.Equal(t, StatusCurrent, r.StatusOn(day(t, "2026-09-13")), "last night")
    assert.Equal(t, StatusCompleted, r.StatusOn(day(t, "2026-09-14")), "check-out day is not occupied")
    assert.Equal(t, StatusCompleted, r.StatusOn(day(t, "2026-10-01")))
}

func TestBookingTotalForStay(t *testing.T) {
    // 100.00 per night for three nights costs 300.00
    l := Listing{CostPerNightCents: 10000}
    stay := rng(t, "2026-09-01", "2026-09-04")
    assert.Equal(t, int64(30000), l.TotalCostCents(stay.Nights()))
}

func TestParseDayRejectsGarbage(t *testing.T) {
    for _, bad := range []string{"", "2026-13-01", "01-09-2026", "2026-09-01T00:00:00Z", "tomorrow"} {
        _, err := ParseDay(bad)
        assert.Error(t, err, bad)
    }
}
