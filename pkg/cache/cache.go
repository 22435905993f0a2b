// Package cache stores generated build reports and rendered artifacts so
// the HTTP server does not regenerate identical bars on every request.
//
// Backends: NullCache (disabled), FileCache (single-process CLI/server),
// RedisCache (multi-instance deployments). Keys are derived from the
// full set of build options, so any option change produces a different
// entry.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by backends that distinguish misses from
// failures (the Cache interface itself reports misses via the hit flag).
var ErrCacheMiss = errors.New("cache miss")

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BuildKeyOpts are the option fields that contribute to a build's cache
// identity.
type BuildKeyOpts struct {
	Length       string `json:"length"`
	CenterBore   bool   `json:"center_bore"`
	EndTaps      bool   `json:"end_taps"`
	Construction bool   `json:"construction"`
	Strategy     string `json:"strategy"`
	WorkingUnit  string `json:"working_unit"`
}

// Keyer generates cache keys. Implementations must be deterministic:
// equal inputs always produce equal keys.
type Keyer interface {
	// BuildKey generates a key for a build report.
	BuildKey(profile string, opts BuildKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact of a build.
	ArtifactKey(buildKey, format string) string
}

// DefaultKeyer is the standard key scheme: "<prefix>:<sha256 of inputs>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BuildKey generates a key for a build report.
func (k *DefaultKeyer) BuildKey(profile string, opts BuildKeyOpts) string {
	return hashKey("build", profile, opts)
}

// ArtifactKey generates a key for a rendered artifact of a build.
func (k *DefaultKeyer) ArtifactKey(buildKey, format string) string {
	return hashKey("artifact", buildKey, format)
}

// hashKey generates "prefix:sha256(parts)". JSON marshaling keeps struct
// field order stable, so equal inputs hash identically.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
