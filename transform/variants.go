// SPDX-License-Identifier: MIT

package transform

import "sync"

// VariantCache interns dimensional variants of a transform (for example the
// 2-D and 3-D forms of a projection) under a comparable key.
//
// Concurrent first requests for the same key may each build a variant;
// LoadOrStore keeps exactly one and every caller receives that one.
// The zero value is ready to use.
type VariantCache[K comparable] struct {
	m sync.Map // K -> Transform
}

// Get returns the cached variant for key, building it on first use.
// A failed build is not cached.
func (c *VariantCache[K]) Get(key K, build func() (Transform, error)) (Transform, error) {
	if v, ok := c.m.Load(key); ok {
		return v.(Transform), nil
	}
	t, err := build()
	if err != nil {
		return nil, err
	}
	v, _ := c.m.LoadOrStore(key, t)

	return v.(Transform), nil
}
