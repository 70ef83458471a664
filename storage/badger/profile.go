package badger

import (
	"context"
	"slices"
	"time"

	"github.com/candela-systems/scholarmatch/core"
	"github.com/candela-systems/scholarmatch/storage"
	"github.com/dgraph-io/badger/v4"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a profile repository on an open backend.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	idSeq, err := backend.GetSequence(profileIDSeq)
	if err != nil {
		return nil, err
	}

	return &ProfileRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ProfileRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddProfiles adds one or more profiles to storage. A profile whose
// content fingerprint is already stored replaces the stored copy and
// keeps its assigned ID, so re-loading a corpus updates instead of
// duplicating.
func (r *ProfileRepository) AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			fingerprint := profile.Fingerprint()

			existing, err := r.findByFingerprint(tx, fingerprint)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if existing != nil {
				profile.Id = existing.Id
				profile.InsertedAt = existing.InsertedAt
				profile.UpdatedAt = now

				if existing.Department != profile.Department {
					if err := r.deleteDepartmentIndex(tx, existing); err != nil {
						return err
					}
				}
			} else {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				profile.Id = core.ID(nextID)
				profile.InsertedAt = now
				profile.UpdatedAt = now
			}

			if err := r.writeProfile(tx, profile, fingerprint); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// UpdateProfiles updates existing profiles by ID.
func (r *ProfileRepository) UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			old, err := r.readProfile(tx, makeProfileKey(profile.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			profile.InsertedAt = old.InsertedAt
			profile.UpdatedAt = time.Now().UTC()

			oldFingerprint := old.Fingerprint()
			newFingerprint := profile.Fingerprint()
			if oldFingerprint != newFingerprint {
				if err := tx.Delete(makeFingerprintKey(oldFingerprint)); err != nil {
					return err
				}
			}

			if old.Department != profile.Department {
				if err := r.deleteDepartmentIndex(tx, old); err != nil {
					return err
				}
			}

			if err := r.writeProfile(tx, profile, newFingerprint); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// DeleteProfiles removes profiles by their IDs.
func (r *ProfileRepository) DeleteProfiles(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProfileKey(id)

			profile, err := r.readProfile(tx, key)
			if err != nil {
				return err
			}
			if profile == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeFingerprintKey(profile.Fingerprint())); err != nil {
				return err
			}
			if err := r.deleteDepartmentIndex(tx, profile); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves a single profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readProfile(tx, makeProfileKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetProfiles retrieves multiple profiles by their IDs.
func (r *ProfileRepository) GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.Profile, error) {
	var result []*core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			profile, err := r.readProfile(tx, makeProfileKey(id))
			if err != nil {
				return err
			}
			if profile != nil {
				result = append(result, profile)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindProfileByFingerprint finds a profile by its content fingerprint.
func (r *ProfileRepository) FindProfileByFingerprint(ctx context.Context, fingerprint core.ID) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.findByFingerprint(tx, fingerprint)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetProfilesByDepartment retrieves profiles in a department, ordered by
// insertion.
func (r *ProfileRepository) GetProfilesByDepartment(ctx context.Context, department string) ([]*core.Profile, error) {
	var results []*core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDepartmentKey(department)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var profileID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				profileID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			profile, err := r.readProfile(tx, makeProfileKey(profileID))
			if err != nil {
				return err
			}
			if profile != nil {
				results = append(results, profile)
			}
		}
		return nil
	}, false)

	return results, err
}

// AllProfiles retrieves the whole corpus in insertion order. Profile
// keys encode the ID BigEndian, so iteration order is ID order.
func (r *ProfileRepository) AllProfiles(ctx context.Context) ([]*core.Profile, error) {
	var results []*core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var profile *core.Profile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalProfile(val)
				return err
			})
			if err != nil {
				return err
			}
			if profile != nil {
				results = append(results, profile)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountProfiles returns the number of stored profiles.
func (r *ProfileRepository) CountProfiles(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readProfile reads a profile from the transaction.
// Returns nil, nil when the key is absent.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.Profile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.Profile
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		profile, unmarshalErr = storage.UnmarshalProfile(val)
		return unmarshalErr
	})
	return profile, err
}

// findByFingerprint resolves a fingerprint index entry to its profile.
// Returns nil, nil when no profile carries the fingerprint.
func (r *ProfileRepository) findByFingerprint(tx *badger.Txn, fingerprint core.ID) (*core.Profile, error) {
	item, err := tx.Get(makeFingerprintKey(fingerprint))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profileID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		profileID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}

	return r.readProfile(tx, makeProfileKey(profileID))
}

// writeProfile stores the primary record plus fingerprint and
// department index entries.
func (r *ProfileRepository) writeProfile(tx *badger.Txn, profile *core.Profile, fingerprint core.ID) error {
	if err := tx.Set(makeProfileKey(profile.Id), storage.MarshalProfile(profile)); err != nil {
		return err
	}
	if err := tx.Set(makeFingerprintKey(fingerprint), storage.MarshalID(profile.Id)); err != nil {
		return err
	}
	if profile.Department != "" {
		if err := tx.Set(makeDepartmentKey(profile.Department, profile.Id), storage.MarshalID(profile.Id)); err != nil {
			return err
		}
	}
	return nil
}

// deleteDepartmentIndex removes the department index entry for a profile.
func (r *ProfileRepository) deleteDepartmentIndex(tx *badger.Txn, profile *core.Profile) error {
	if profile.Department == "" {
		return nil
	}
	return tx.Delete(makeDepartmentKey(profile.Department, profile.Id))
}
