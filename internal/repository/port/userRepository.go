package repository

import "context"

// User is the read-only identity record referenced by discussions, rosters
// and note threads. Account lifecycle lives with the identity provider, not
// this service.
type User struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	AvatarURL *string `db:"avatar_url"`
}

// UserRepository resolves user reference data for display purposes.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIDs returns the users that exist among ids; missing ids are
	// silently skipped.
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
}
