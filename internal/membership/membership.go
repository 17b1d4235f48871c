// Package membership defines how the ledger learns who belongs to a group.
//
// Group membership is managed outside the ledger. The ledger only reads it
// through Oracle, which is injected into the services that need it.
package membership

import (
	"context"
	"errors"
)

// ErrGroupNotFound is returned by an Oracle when the group does not exist.
var ErrGroupNotFound = errors.New("group not found")

// Oracle supplies group membership and state at a point in time.
//
// Implementations backed by the ledger's own database must honor a
// transaction carried in ctx, so that membership reads and share writes
// see the same snapshot.
type Oracle interface {
	// Members returns the ordered list of member user IDs.
	Members(ctx context.Context, groupID string) ([]string, error)

	// Owner returns the user ID of the group owner.
	Owner(ctx context.Context, groupID string) (string, error)

	// IsClosed reports whether the group rejects expense mutations.
	IsClosed(ctx context.Context, groupID string) (bool, error)

	// Name returns the display name of the group.
	Name(ctx context.Context, groupID string) (string, error)
}

// IsMember reports whether userID is in the group's member list.
func IsMember(ctx context.Context, o Oracle, groupID, userID string) (bool, error) {
	members, err := o.Members(ctx, groupID)
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}
