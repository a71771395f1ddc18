package cache

// ScopedKeyer wraps a Keyer with a prefix, giving several tools or users
// that share one backend separate namespaces.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "lab-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed key for search results.
func (k *ScopedKeyer) ResultKey(networkHash, motifHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(networkHash, motifHash, opts)
}

// SymmetryKey generates a prefixed key for symmetry analyses.
func (k *ScopedKeyer) SymmetryKey(motifHash string) string {
	return k.prefix + k.inner.SymmetryKey(motifHash)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}
