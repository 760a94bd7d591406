package auth

// Principal is the authenticated caller resolved from a credential.
type Principal struct {
	ID       uint64
	Username string
}

// IsZero reports whether the principal is unset.
func (p Principal) IsZero() bool {
	return p.ID == 0
}
