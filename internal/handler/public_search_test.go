package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func searchContext(t *testing.T, query string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/search/listings?"+query, nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestSearchListingsRejectsBadDates(t *testing.T) {
    h := &PublicHandler{}

    c, rec := searchContext(t, "check_in=2026-09-04&check_out=2026-09-01")
    require.NoError(t, h.SearchListings(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), codeInvalidDateRange)

    c, rec = searchContext(t, "check_in=not-a-date&check_out=2026-09-01")
    require.NoError(t, h.SearchListings(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// page=abc must surface as invalid criteria, not silently become the
// first page.
func TestSearchListingsRejectsNonNumericPaging(t *testing.T) {
    h := &PublicHandler{}
    const dates = "check_in=2026-09-01&check_out=2026-09-04"

    for _, query := range []string{
        dates + "&page=abc",
        dates + "&limit=xyz",
        dates + "&page=1.5",
        dates + "&num_of_beds=two",
    } {
        c, rec := searchContext(t, query)
        require.NoError(t, h.SearchListings(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code, query)
        assert.Contains(t, rec.Body.String(), codeInvalidSearch, query)
        assert.Contains(t, rec.Body.String(), `"listings":[]`, query)
    }
}

func TestSearchListingsRejectsOutOfRangeValues(t *testing.T) {
    h := &PublicHandler{}
    const dates = "check_in=2026-09-01&check_out=2026-09-04"

    for _, query := range []string{
        dates + "&page=0",
        dates + "&page=-2",
        dates + "&limit=0",
        dates + "&sort_by=RATING_DESC",
    } {
        c, rec := searchContext(t, query)
        require.NoError(t, h.SearchListings(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code, query)
        assert.Contains(t, rec.Body.String(), codeInvalidSearch, query)
    }
}
