package cache

import "github.com/matzehuels/umlayout/pkg/layout"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the laid-out document produced from the
	// input document with the given hash under cfg.
	LayoutKey(documentHash string, cfg layout.Config) string
}

// DefaultKeyer hashes every input that affects the output.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer. Defaults are applied first, so a zero field
// and its explicit default produce the same key.
func (DefaultKeyer) LayoutKey(documentHash string, cfg layout.Config) string {
	cfg.SetDefaults()
	return hashKey("layout", documentHash, cfg)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(documentHash string, cfg layout.Config) string {
	return k.prefix + k.inner.LayoutKey(documentHash, cfg)
}
