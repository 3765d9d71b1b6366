// SPDX-License-Identifier: MIT

package transform

import (
	"reflect"

	"github.com/katalvlaran/geoxform/matrix"
)

// same reports reference identity without panicking on non-comparable
// dynamic types.
func same(a, b Transform) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}

	return a == b
}

// Equal reports structural equality: the same instance, equal matrices
// (exact, NaN equal to NaN) for linear transforms, or pairwise-equal parts
// for pass-throughs and concatenations.
func Equal(a, b Transform) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if same(a, b) {
		return true
	}
	if a.SourceDimensions() != b.SourceDimensions() || a.TargetDimensions() != b.TargetDimensions() {
		return false
	}
	la, okA := a.(LinearTransform)
	lb, okB := b.(LinearTransform)
	if okA || okB {
		return okA && okB && matrix.Equal(la.Matrix(), lb.Matrix())
	}

	switch x := a.(type) {
	case *PassThroughTransform:
		y, ok := b.(*PassThroughTransform)
		return ok && x.first == y.first && x.trailing == y.trailing && Equal(x.sub, y.sub)
	case concatenation:
		y, ok := b.(concatenation)
		return ok && Equal(x.First(), y.First()) && Equal(x.Second(), y.Second())
	case equaler:
		return x.equalTo(b)
	}

	return false
}
