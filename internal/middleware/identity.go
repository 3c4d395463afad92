package middleware

// identity.go holds helpers shared by the cache and rate-limit
// middleware for attributing a request to a caller.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// callerID returns a string identity for the current request: the
// user_id claim stored by JWTAuth when present, "anon" otherwise.
// Cache and rate-limit keys use it so authenticated and anonymous
// traffic never share buckets.
func callerID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}
