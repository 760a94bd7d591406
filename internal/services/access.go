package services

import "github.com/yukikurage/workout-api/internal/auth"

// Authorize reports whether p may act on a resource owned by ownerID.
// Callers surface a false result as the resource's not-found error.
func Authorize(p auth.Principal, ownerID uint64) bool {
	return !p.IsZero() && p.ID == ownerID
}
