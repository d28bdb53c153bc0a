package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDuplicateKey is returned by InsertOne when a unique index rejects the
// document. Callers treat it as "already exists" and retry their lookup path.
var ErrDuplicateKey = errors.New("store: duplicate key")

// UpdateResult reports what an update touched.
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResult reports what a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// InsertResult carries the id the store assigned.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// Collection is a uniform view over one named document collection. Not-found
// is an empty result, never an error; store-level failures come back wrapped
// so callers can distinguish them.
type Collection interface {
	// FindOne decodes the first match into out. Returns false when nothing
	// matched, with out untouched.
	FindOne(ctx context.Context, filter bson.M, out interface{}) (bool, error)
	// FindAll decodes every match into out, a pointer to a slice.
	FindAll(ctx context.Context, filter bson.M, out interface{}) error
	// InsertOne stores doc and returns the assigned id in hex form.
	InsertOne(ctx context.Context, doc interface{}) (string, error)
	// UpdateOne applies set-field semantics to the first match. When upsert is
	// true a non-matching filter creates a new document; call sites choose
	// deliberately since upserting on a typo'd id silently creates garbage.
	UpdateOne(ctx context.Context, filter, set bson.M, upsert bool) (*UpdateResult, error)
	UpdateMany(ctx context.Context, filter, set bson.M) (*UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error)
	DeleteMany(ctx context.Context, filter bson.M) (*DeleteResult, error)
}

// Store bundles the four collections the domain layer works against. It is
// created once at startup and injected, never referenced as ambient state.
type Store struct {
	Users      Collection
	Categories Collection
	Products   Collection
	Orders     Collection

	disconnect func(context.Context) error
}

// Disconnect releases the underlying client, if any.
func (s *Store) Disconnect(ctx context.Context) error {
	if s.disconnect == nil {
		return nil
	}
	return s.disconnect(ctx)
}

// NewMemory returns a Store backed entirely by in-memory collections, with
// the same unique-email constraint the Mongo deployment carries.
func NewMemory() *Store {
	return &Store{
		Users:      NewMemoryCollection("email"),
		Categories: NewMemoryCollection(),
		Products:   NewMemoryCollection(),
		Orders:     NewMemoryCollection(),
	}
}
