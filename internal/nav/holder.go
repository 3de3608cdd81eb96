package nav

import "sync/atomic"

// Holder publishes the current Resolver. Readers call Load on every request;
// a reload builds a new table and calls Store, never mutating the old one.
type Holder struct {
	current atomic.Pointer[Resolver]
}

// NewHolder returns a Holder publishing r.
func NewHolder(r *Resolver) *Holder {
	h := &Holder{}
	h.current.Store(r)
	return h
}

// Load returns the published resolver.
func (h *Holder) Load() *Resolver { return h.current.Load() }

// Store publishes r and returns the previous resolver.
func (h *Holder) Store(r *Resolver) *Resolver { return h.current.Swap(r) }
