// SPDX-License-Identifier: MIT

package transform

import "sync/atomic"

// inverseSlot is a write-once, race-tolerant cache for a transform's inverse.
// Concurrent first calls may each compute an inverse; a compare-and-swap keeps
// exactly one and the losers are discarded before anyone sees them.
type inverseSlot struct {
	p atomic.Pointer[Transform]
}

// peek returns the cached inverse or nil.
func (s *inverseSlot) peek() Transform {
	if p := s.p.Load(); p != nil {
		return *p
	}

	return nil
}

// link stores origin as the inverse if none is cached yet.
func (s *inverseSlot) link(origin Transform) {
	s.p.CompareAndSwap(nil, &origin)
}

// resolve returns the cached inverse, computing it with compute on first use.
// The computed inverse is linked back to self so that
// self.Inverse().Inverse() == self.
func (s *inverseSlot) resolve(self Transform, compute func() (Transform, error)) (Transform, error) {
	if inv := s.peek(); inv != nil {
		return inv, nil
	}
	inv, err := compute()
	if err != nil {
		return nil, err
	}
	if l, ok := inv.(inverseLinker); ok {
		l.linkInverse(self)
	}
	if s.p.CompareAndSwap(nil, &inv) {
		return inv, nil
	}

	return s.peek(), nil
}
