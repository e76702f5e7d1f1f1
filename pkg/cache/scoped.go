package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments can share one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix. A nil inner keyer
// means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PlacementKey implements Keyer.
func (k *ScopedKeyer) PlacementKey(boardID string, page int, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(boardID, page, opts)
}

// PreviewKey implements Keyer.
func (k *ScopedKeyer) PreviewKey(boardID string, page int, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(boardID, page, opts)
}

// PagePrefix implements Keyer.
func (k *ScopedKeyer) PagePrefix(boardID string, page int) string {
	return k.prefix + k.inner.PagePrefix(boardID, page)
}
