// Package authz holds the role resolution policy.  The original system
// scattered a hardcoded administrator email across sign-in call sites;
// here the decision lives in a single explicit function so the
// emergency fallback is documented in exactly one place.
package authz

import "strings"

// Role names embedded in JWTs and stored on user profiles.
const (
    RoleAdmin = "ADMIN"
    RoleUser  = "USER"
)

// Resolve determines the effective role for a signed-in identity.
// profileRole is whatever the stored user profile carries (may be
// empty for accounts created before roles existed).  adminEmail is the
// configured emergency administrator address: an identity matching it
// is always ADMIN even when its profile says otherwise, so the
// facility staff cannot lock themselves out by editing profiles.
// Every other identity resolves to USER.
func Resolve(email, profileRole, adminEmail string) string {
    if strings.EqualFold(strings.TrimSpace(profileRole), RoleAdmin) {
        return RoleAdmin
    }
    if adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), adminEmail) {
        return RoleAdmin
    }
    return RoleUser
}
