package middleware

// identity.go holds helpers shared across middleware files.  currentUserID
// pulls the subject stored by JWTAuth so the rate limiter can key buckets
// per user; unauthenticated requests share the "anon" bucket.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the authenticated user's ID,
// or "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
    if v := c.Get("user_id"); v != nil {
        switch t := v.(type) {
        case string:
            if t != "" {
                return t
            }
        case float64:
            // jwt claims decode numbers as float64
            return strconv.FormatUint(uint64(t), 10)
        case uint64:
            return strconv.FormatUint(t, 10)
        }
    }
    return "anon"
}
