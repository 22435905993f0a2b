package cache

// ScopedKeyer wraps a Keyer with a prefix so independent deployments (or
// working-unit configurations sharing one Redis) get separate cache
// namespaces.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "site-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BuildKey generates a prefixed key for a build report.
func (k *ScopedKeyer) BuildKey(profile string, opts BuildKeyOpts) string {
	return k.prefix + k.inner.BuildKey(profile, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(buildKey, format string) string {
	return k.prefix + k.inner.ArtifactKey(buildKey, format)
}
