package storage

import (
	"context"

	"github.com/candela-systems/scholarmatch/core"
)

// Repository provides common storage operations.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ProfileRepository provides operations for managing researcher profiles.
type ProfileRepository interface {
	Repository

	// AddProfiles adds one or more profiles to storage.
	// New profiles get sequential IDs; a profile whose content
	// fingerprint already exists updates the stored copy in place and
	// keeps its ID. Sets InsertedAt and UpdatedAt timestamps.
	// Returns the profiles with IDs and timestamps populated.
	AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// UpdateProfiles updates existing profiles by ID.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any profile doesn't exist.
	UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// DeleteProfiles removes profiles by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any profile doesn't exist.
	DeleteProfiles(ctx context.Context, ids ...core.ID) error

	// GetProfile retrieves a single profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.Profile, error)

	// GetProfiles retrieves multiple profiles by their IDs.
	// Returns only the profiles that exist (no error for missing profiles).
	GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.Profile, error)

	// FindProfileByFingerprint finds a profile by its content fingerprint.
	// Returns ErrNotFound if no matching profile exists.
	FindProfileByFingerprint(ctx context.Context, fingerprint core.ID) (*core.Profile, error)

	// GetProfilesByDepartment retrieves profiles in a department,
	// ordered by insertion.
	GetProfilesByDepartment(ctx context.Context, department string) ([]*core.Profile, error)

	// AllProfiles retrieves the whole corpus ordered by insertion, so
	// repeated reads produce the same ordering.
	AllProfiles(ctx context.Context) ([]*core.Profile, error)

	// CountProfiles returns the number of stored profiles.
	CountProfiles(ctx context.Context) (int, error)
}
