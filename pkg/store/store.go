// Package store persists distributed layouts.
//
// A [Store] keeps named layout records with server-assigned ids, backing
// the API's layout collection. [MemoryStore] serves tests and single-node
// setups; [MongoStore] persists to MongoDB for deployments.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/orbital/pkg/graph"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("layout not found")

// Record is a stored layout with identity and creation time.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	Layout    graph.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

// Store persists layout records.
//
// Save assigns the record id; Get and Delete return [ErrNotFound] for
// unknown ids. Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a layout under a fresh id and returns the record.
	Save(ctx context.Context, name string, l graph.Layout) (*Record, error)
	// Get retrieves a record by id.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns the most recent records, newest first. A non-positive
	// limit returns all records.
	List(ctx context.Context, limit int) ([]*Record, error)
	// Delete removes a record by id.
	Delete(ctx context.Context, id string) error
	// Close releases resources held by the store.
	Close(ctx context.Context) error
}
