package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/repository"
)

// SearchListings handles GET /v1/search/listings.  The date range is
// required; num_of_beds, page, limit and sort_by are optional with
// defaults page=1, limit=5, sort_by=COST_DESC.  Bad pagination or sort
// values yield an empty list with an out-of-band error, since the list
// itself is part of the contract and can never be null.
func (h *PublicHandler) SearchListings(c echo.Context) error {
    rng, err := parseDateRange(c.QueryParam("check_in"), c.QueryParam("check_out"))
    if err != nil || !rng.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":    "check_in and check_out must form a valid date range",
            "code":     codeInvalidDateRange,
            "listings": []repository.ListingRow{},
        })
    }

    q := repository.SearchQuery{CheckIn: rng.CheckIn, CheckOut: rng.CheckOut}
    if raw := strings.TrimSpace(c.QueryParam("num_of_beds")); raw != "" {
        beds, err := strconv.Atoi(raw)
        if err != nil || beds < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{
                "error":    "num_of_beds must be a positive integer",
                "code":     codeInvalidSearch,
                "listings": []repository.ListingRow{},
            })
        }
        q.NumOfBeds = &beds
    }
    if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
        page, err := strconv.Atoi(raw)
        if err != nil || page < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{
                "error":    "page must be a positive integer",
                "code":     codeInvalidSearch,
                "listings": []repository.ListingRow{},
            })
        }
        q.Page = page
    }
    if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
        limit, err := strconv.Atoi(raw)
        if err != nil || limit < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{
                "error":    "limit must be a positive integer",
                "code":     codeInvalidSearch,
                "listings": []repository.ListingRow{},
            })
        }
        q.Limit = limit
    }
    q.SortBy = c.QueryParam("sort_by")

    if err := q.Normalize(); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":    "page and limit must be positive and sort_by must be COST_ASC or COST_DESC",
            "code":     codeInvalidSearch,
            "listings": []repository.ListingRow{},
        })
    }

    items, total, err := h.ListingRepo.SearchAvailable(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "listings": items,
        "total":    total,
        "page":     q.Page,
        "limit":    q.Limit,
        "sort_by":  q.SortBy,
    })
}
