package repository

import (
    "context"
    "testing"
    "time"

    sqlmock "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/airnest/listing-reservation/internal/model"
)

func TestSearchQueryNormalizeDefaults(t *testing.T) {
    var q SearchQuery
    require.NoError(t, q.Normalize())
    assert.Equal(t, 1, q.Page)
    assert.Equal(t, DefaultSearchLimit, q.Limit)
    assert.Equal(t, SortCostDesc, q.SortBy)
}

func TestSearchQueryNormalizeExplicit(t *testing.T) {
    q := SearchQuery{Page: 3, Limit: 20, SortBy: "cost_asc"}
    require.NoError(t, q.Normalize())
    assert.Equal(t, 3, q.Page)
    assert.Equal(t, 20, q.Limit)
    assert.Equal(t, SortCostAsc, q.SortBy, "sort order is case-insensitive")
}

func TestSearchQueryNormalizeRejects(t *testing.T) {
    tests := []struct {
        name string
        q    SearchQuery
    }{
        {"negative page", SearchQuery{Page: -1}},
        {"negative limit", SearchQuery{Limit: -5}},
        {"unknown sort", SearchQuery{SortBy: "RATING_DESC"}},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            assert.ErrorIs(t, tc.q.Normalize(), ErrInvalidSearchCriteria)
        })
    }
}

func TestSearchQueryNormalizeClampsLimit(t *testing.T) {
    q := SearchQuery{Limit: 5000}
    require.NoError(t, q.Normalize())
    assert.Equal(t, MaxSearchLimit, q.Limit)
}

func TestSearchQueryNormalizeAnchorsToday(t *testing.T) {
    var q SearchQuery
    require.NoError(t, q.Normalize())
    assert.False(t, q.Today.IsZero())

    anchored := SearchQuery{Today: mustParseDay(t, "2026-09-01")}
    require.NoError(t, anchored.Normalize())
    assert.Equal(t, mustParseDay(t, "2026-09-01"), anchored.Today)
}

// A booking that already checked out must not exclude a listing, so the
// availability anti-join carries the completed-booking cutoff alongside
// the overlap bounds.
func TestSearchAvailableScopesToNonCompletedBookings(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    q := SearchQuery{
        CheckIn:  mustParseDay(t, "2026-03-01"),
        CheckOut: mustParseDay(t, "2026-03-04"),
        Today:    mustParseDay(t, "2026-09-01"),
    }
    require.NoError(t, q.Normalize())

    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings`).
        WithArgs(q.CheckOut, q.CheckIn, q.Today).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
    mock.ExpectQuery("SELECT(.|\n)+FROM listings l").
        WithArgs(q.CheckOut, q.CheckIn, q.Today, q.Limit, 0).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "host_id", "title", "photo_url", "num_of_beds",
            "location_type", "cost_per_night_cents", "rating_sum", "review_count",
        }).AddRow(5, 2, "Cabin", "", 2, "HOUSE", 12050, nil, nil))

    repo := NewListingRepo(db)
    rows, total, err := repo.SearchAvailable(context.Background(), q)
    require.NoError(t, err)
    assert.Equal(t, int64(1), total)
    require.Len(t, rows, 1)
    assert.Equal(t, 120.50, rows[0].CostPerNight)
    assert.Nil(t, rows[0].OverallRating)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func mustParseDay(t *testing.T, s string) time.Time {
    t.Helper()
    d, err := model.ParseDay(s)
    require.NoError(t, err)
    return d
}
