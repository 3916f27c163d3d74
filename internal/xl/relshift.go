package xl

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// RelShift re-aligns a relative-position score tensor of shape
// [batch, heads, qLen, rLen] so that column j of row i addresses relative
// distance j-i instead of j.
//
// The shift is the exact pad/reshape/slice/reshape trick: prepend a zero
// column, reinterpret the flat buffer as [batch, heads, rLen+1, qLen], drop
// the first row of that view, and reshape back. For a 4×3 slice
//
//	0  1  2          0  3  4
//	3  4  5    ->    5  0  6
//	6  7  8          7  8  0
//	9 10 11          9 10 11
//
// Downstream relative-attention scores depend on this buffer arithmetic
// being reproduced exactly, not approximated.
func RelShift[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("RelShift: expected 4D [batch, heads, qLen, rLen], got %v", shape))
	}
	batch, heads, qLen, rLen := shape[0], shape[1], shape[2], shape[3]

	padded := x.Pad(-1, 1, 0)                   // [batch, heads, qLen, rLen+1]
	folded := padded.Reshape(batch, heads, rLen+1, qLen) // same buffer, rows re-cut
	trimmed := folded.Narrow(2, 1, rLen)        // drop the zero row

	return trimmed.Reshape(batch, heads, qLen, rLen)
}
