// Package db is the document store behind the repositories. Each backend
// keeps one collection per entity kind and speaks the same small subset of
// document-database semantics: exact-match filters where an array field
// matches when it contains the value, $set patches and $pull removals.
package db

import (
	"context"
	"errors"
)

var (
	ErrNoDocuments  = errors.New("db: no documents in result")
	ErrDuplicateKey = errors.New("db: duplicate key")
	ErrMissingID    = errors.New("db: document has no _id")
)

// Filter maps field names to the value they must equal. A field holding an
// array matches when any element equals the value.
type Filter map[string]interface{}

// Document is a set of field assignments.
type Document map[string]interface{}

type UpdateResult struct {
	Matched  int64
	Modified int64
}

type Collection interface {
	Name() string
	// Find decodes every matching document into results, a pointer to a slice.
	Find(ctx context.Context, filter Filter, results interface{}) error
	// FindOne decodes the first match into result or returns ErrNoDocuments.
	FindOne(ctx context.Context, filter Filter, result interface{}) error
	// InsertOne stores doc under its "_id" field.
	InsertOne(ctx context.Context, doc interface{}) error
	ReplaceOne(ctx context.Context, filter Filter, doc interface{}) error
	UpdateOne(ctx context.Context, filter Filter, set Document) (UpdateResult, error)
	// DeleteOne removes the first match and decodes it into deleted when
	// deleted is non-nil.
	DeleteOne(ctx context.Context, filter Filter, deleted interface{}) error
	// Pull removes every occurrence of value from the array field of the
	// first matching document.
	Pull(ctx context.Context, filter Filter, field string, value interface{}) (UpdateResult, error)
}

type Database interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
