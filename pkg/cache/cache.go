// Package cache provides the caching layer for pipeline results.
//
// A [Cache] stores opaque byte payloads under string keys with optional
// expiration; [Keyer] derives those keys from content hashes and the
// options that influenced the result. The file-backed implementation
// serves CLI usage, the Redis-backed one is shared by API replicas, and
// [NullCache] disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage.
const (
	// TTLLayout is how long distributed layouts stay cached.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys.
//
// Get reports a miss with hit=false and a nil error; errors are reserved
// for backend failures. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the payload stored under key.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores a payload under key. A zero ttl stores it without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes the payload stored under key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer generates cache keys for pipeline stages.
//
// Keys are derived from a content hash plus every option that changes the
// stage's output, so results computed under different options never
// collide.
type Keyer interface {
	// LayoutKey generates a key for a distributed layout.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that affect layout computation.
type LayoutKeyOpts struct {
	NoCluster    bool    `json:"no_cluster"`
	ComponentGap float64 `json:"component_gap"`
}

// ArtifactKeyOpts holds the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Theme      string  `json:"theme"`
	Scale      float64 `json:"scale"`
	ShowOrbits bool    `json:"show_orbits"`
	ShowLabels bool    `json:"show_labels"`
	Engine     string  `json:"engine"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a distributed layout.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
