package models

// Group represents a group as seen by the ledger.
// Groups are owned by the membership directory; the ledger never mutates them.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Kazan").
	Name string

	// OwnerID is the user who owns the group. Only the owner may delete expenses.
	OwnerID string

	// Members is the ordered list of member user IDs.
	// Order matters: the first member absorbs the rounding remainder when an
	// expense is split equally.
	Members []string

	// Closed is true once the group stops accepting expense mutations.
	Closed bool

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
