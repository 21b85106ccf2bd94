// Package session tracks which users are currently logged in to the identity
// provider.
//
// Membership is independent of token validity: a user stays active until they
// log out, however long that takes, and an unexpired token for an inactive
// user must be rejected.
package session

import "context"

// Registry is the set of active users. Implementations must be safe for
// concurrent use.
type Registry interface {
	// Activate adds user to the set. Activating an active user does nothing.
	Activate(ctx context.Context, user string) error

	// Deactivate removes user from the set. Deactivating an inactive user does
	// nothing.
	Deactivate(ctx context.Context, user string) error

	// IsActive reports whether user is in the set.
	IsActive(ctx context.Context, user string) (bool, error)
}
