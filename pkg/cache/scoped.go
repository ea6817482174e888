package cache

// ScopedKeyer wraps a Keyer with a prefix so deployments sharing a backend
// use separate namespaces.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// DatasetKey generates a prefixed key for dataset snapshots.
func (k *ScopedKeyer) DatasetKey(fingerprint string, opts DatasetKeyOpts) string {
	return k.prefix + k.inner.DatasetKey(fingerprint, opts)
}
