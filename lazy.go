package otface

import "github.com/npillmayer/otface/ot"

// lazyCache materializes a value at most once. It distinguishes three
// states: not loaded, loaded with a value, and loaded without one ("the
// font simply doesn't have this"). A failed computation does not count as
// loading — the cache stays in its unloaded state and the next access
// computes again.
type lazyCache[T any] struct {
	loaded bool
	value  ot.Option[T]
}

// getOrLoad returns the cached outcome, running compute on first access.
// compute's error is propagated verbatim and leaves the cache untouched.
func (c *lazyCache[T]) getOrLoad(compute func() (ot.Option[T], error)) (ot.Option[T], error) {
	if c.loaded {
		return c.value, nil
	}
	v, err := compute()
	if err != nil {
		return ot.None[T](), err
	}
	c.loaded = true
	c.value = v
	return v, nil
}
