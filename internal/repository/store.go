// Package repository is the entity store: typed CRUD over one document
// collection per entity kind, with defaults, validation and credential
// hashing applied before anything is written.
package repository

import (
	"context"
	"errors"
	"time"

	"school-admin-api/internal/credential"
	"school-admin-api/internal/db"
	apperrors "school-admin-api/pkg/errors"
)

// Entity is implemented by the pointer type of every stored record.
type Entity[T any] interface {
	*T
	ApplyDefaults(now time.Time)
	Validate() error
}

type Options[T any] struct {
	// Resource names the entity in NotFound and conflict messages.
	Resource string
	// DuplicateMessage is reported when an insert collides on _id.
	DuplicateMessage string
	ID               func(*T) string
	// Prepare runs after validation, right before a record is written.
	Prepare func(*T, credential.Hasher) error
	// ValidatePatch checks the fields of a partial update.
	ValidatePatch func(db.Document) error
}

type Store[T any, PT Entity[T]] struct {
	coll   db.Collection
	hasher credential.Hasher
	opts   Options[T]
	now    func() time.Time
}

func NewStore[T any, PT Entity[T]](coll db.Collection, hasher credential.Hasher, opts Options[T]) *Store[T, PT] {
	return &Store[T, PT]{
		coll:   coll,
		hasher: hasher,
		opts:   opts,
		now:    time.Now,
	}
}

func (s *Store[T, PT]) storeErr(op string, err error) error {
	return apperrors.StoreError{Op: op, Collection: s.coll.Name(), Err: err}
}

func (s *Store[T, PT]) Find(ctx context.Context, filter db.Filter) ([]T, error) {
	out := []T{}
	if err := s.coll.Find(ctx, filter, &out); err != nil {
		return nil, s.storeErr("find", err)
	}
	return out, nil
}

// FindOne returns the first match or a NotFoundError.
func (s *Store[T, PT]) FindOne(ctx context.Context, filter db.Filter) (*T, error) {
	var out T
	if err := s.coll.FindOne(ctx, filter, &out); err != nil {
		if errors.Is(err, db.ErrNoDocuments) {
			return nil, apperrors.NewNotFound(s.opts.Resource)
		}
		return nil, s.storeErr("findOne", err)
	}
	return &out, nil
}

// Exists reports whether any record matches filter.
func (s *Store[T, PT]) Exists(ctx context.Context, filter db.Filter) (bool, error) {
	_, err := s.FindOne(ctx, filter)
	switch {
	case err == nil:
		return true, nil
	case apperrors.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

func (s *Store[T, PT]) prepare(v *T) error {
	if err := PT(v).Validate(); err != nil {
		return err
	}
	if s.opts.Prepare != nil {
		return s.opts.Prepare(v, s.hasher)
	}
	return nil
}

// Insert fills defaults, validates, hashes credentials and stores v.
func (s *Store[T, PT]) Insert(ctx context.Context, v *T) error {
	PT(v).ApplyDefaults(s.now())
	if err := s.prepare(v); err != nil {
		return err
	}

	if err := s.coll.InsertOne(ctx, v); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			msg := s.opts.DuplicateMessage
			if msg == "" {
				msg = s.opts.Resource + " Already Exists"
			}
			return apperrors.NewConflict(msg)
		}
		return s.storeErr("insert", err)
	}
	return nil
}

// Save replaces the stored copy of v. Credentials are rehashed only when
// they changed since v was loaded.
func (s *Store[T, PT]) Save(ctx context.Context, v *T) error {
	if err := s.prepare(v); err != nil {
		return err
	}

	err := s.coll.ReplaceOne(ctx, db.Filter{"_id": s.opts.ID(v)}, v)
	if errors.Is(err, db.ErrNoDocuments) {
		return apperrors.NewNotFound(s.opts.Resource)
	}
	if err != nil {
		return s.storeErr("save", err)
	}
	return nil
}

// UpdateOne applies patch to the first match. Secret values in the patch
// are hashed before the write.
func (s *Store[T, PT]) UpdateOne(ctx context.Context, filter db.Filter, patch map[string]interface{}) (db.UpdateResult, error) {
	set := db.Document(patch)
	if s.opts.ValidatePatch != nil {
		if err := s.opts.ValidatePatch(set); err != nil {
			return db.UpdateResult{}, err
		}
	}
	for _, value := range set {
		if secret, ok := value.(*credential.Secret); ok {
			if err := secret.Prepare(s.hasher); err != nil {
				return db.UpdateResult{}, err
			}
		}
	}

	if len(set) == 0 {
		found, err := s.Exists(ctx, filter)
		if err != nil || !found {
			return db.UpdateResult{}, err
		}
		return db.UpdateResult{Matched: 1}, nil
	}

	res, err := s.coll.UpdateOne(ctx, filter, set)
	if err != nil {
		return db.UpdateResult{}, s.storeErr("update", err)
	}
	return res, nil
}

// DeleteOne removes the first match and returns it, or a NotFoundError.
func (s *Store[T, PT]) DeleteOne(ctx context.Context, filter db.Filter) (*T, error) {
	var out T
	if err := s.coll.DeleteOne(ctx, filter, &out); err != nil {
		if errors.Is(err, db.ErrNoDocuments) {
			return nil, apperrors.NewNotFound(s.opts.Resource)
		}
		return nil, s.storeErr("delete", err)
	}
	return &out, nil
}

// RemoveFromArrayField pulls every occurrence of value out of field on the
// first matching record.
func (s *Store[T, PT]) RemoveFromArrayField(ctx context.Context, filter db.Filter, field string, value interface{}) (db.UpdateResult, error) {
	res, err := s.coll.Pull(ctx, filter, field, value)
	if err != nil {
		return db.UpdateResult{}, s.storeErr("pull", err)
	}
	return res, nil
}
