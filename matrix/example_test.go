package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/geoxform/matrix"
)

// ExampleInverse inverts the homogeneous matrix of "scale by 2, then shift by 3".
func ExampleInverse() {
	m, _ := matrix.NewDenseFrom(2, 2, []float64{
		2, 3,
		0, 1,
	})
	inv, _ := matrix.Inverse(m)
	fmt.Print(inv)

	p, _ := matrix.NewDenseFrom(2, 1, []float64{7, 1})
	y, _ := matrix.Mul(inv, p)
	fmt.Println(y.Flat())

	// Output:
	// [0.5, -1.5]
	// [0, 1]
	// [2 1]
}

// ExampleMul chains two Jacobians: a 1×2 after a 2×2.
func ExampleMul() {
	outer, _ := matrix.NewDenseFrom(1, 2, []float64{1, 1})
	inner, _ := matrix.NewDenseFrom(2, 2, []float64{2, 0, 0, 3})
	j, _ := matrix.Mul(outer, inner)
	fmt.Println(j.Flat())

	// Output:
	// [2 3]
}
