package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/Eliox00/Sistema-de-reservas/internal/authz"
)

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64.  The claim may arrive as any
// numeric type depending on how it was encoded.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the current request carries the ADMIN role
// claim.  Route-level enforcement uses RequireRole; this helper covers
// handlers where admins get wider visibility on a shared endpoint.
func isAdmin(c echo.Context) bool {
    role, _ := c.Get("role").(string)
    return role == authz.RoleAdmin
}
