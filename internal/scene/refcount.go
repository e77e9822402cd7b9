package scene

import "sync/atomic"

// Referenced is implemented by objects whose lifetime is tracked with
// an explicit holder count rather than trusted destruction order.
// Observer registries retain observers that implement it.
type Referenced interface {
	Retain()
	Release() int32
}

// RefCount is an embeddable holder count. The zero value has no
// holders.
type RefCount struct {
	n atomic.Int32
}

func (r *RefCount) Retain() {
	r.n.Add(1)
}

// Release drops one hold and returns the number remaining.
func (r *RefCount) Release() int32 {
	return r.n.Add(-1)
}

// Refs returns the current holder count.
func (r *RefCount) Refs() int32 {
	return r.n.Load()
}
