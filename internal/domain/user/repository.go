package user

import "context"

// UserRepository - directory lookup plus the conditional balance decrement.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	// GetByIDs returns the users found, keyed by id. Missing ids are
	// absent from the map, not an error.
	GetByIDs(ctx context.Context, ids []string) (map[string]User, error)
	// DeductBalance subtracts days from the user's leave balance only if
	// the current balance covers it. Returns false when it does not.
	DeductBalance(ctx context.Context, id string, days int) (bool, error)
}
