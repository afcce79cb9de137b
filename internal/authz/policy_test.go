package authz

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestResolveProfileRoleWins(t *testing.T) {
    assert.Equal(t, RoleAdmin, Resolve("someone@campus.edu", "ADMIN", "admin@centro.com"))
    assert.Equal(t, RoleAdmin, Resolve("someone@campus.edu", "admin", "admin@centro.com"))
}

func TestResolveAdminEmailFallback(t *testing.T) {
    assert.Equal(t, RoleAdmin, Resolve("admin@centro.com", "", "admin@centro.com"))
    assert.Equal(t, RoleAdmin, Resolve("Admin@Centro.com", "USER", "admin@centro.com"))
}

func TestResolveDefaultsToUser(t *testing.T) {
    assert.Equal(t, RoleUser, Resolve("student@campus.edu", "", "admin@centro.com"))
    assert.Equal(t, RoleUser, Resolve("student@campus.edu", "USER", "admin@centro.com"))
    assert.Equal(t, RoleUser, Resolve("student@campus.edu", "", ""), "no fallback configured")
}
