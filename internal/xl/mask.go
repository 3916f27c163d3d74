package xl

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// LookAheadMask builds the causal attention mask for a query segment of
// length qSeqLen attending to mSeqLen cached memory steps plus itself.
//
// The mask has shape [1, 1, qSeqLen, mSeqLen+qSeqLen] with values in {0, 1},
// where 1 marks a forbidden position. Every memory column is visible, so the
// leftmost mSeqLen columns are zero; within the query block, row i may see
// columns up to and including its own, so the rightmost qSeqLen×qSeqLen
// submatrix is strictly upper-triangular:
//
//	0 ... 0 | 0 1 1 ... 1
//	0 ... 0 | 0 0 1 ... 1
//	          ...
//	0 ... 0 | 0 0 0 ... 0
//
// The leading singleton dimensions broadcast over batch and heads.
func LookAheadMask[B tensor.Backend](qSeqLen, mSeqLen int, backend B) *tensor.Tensor[float32, B] {
	if qSeqLen <= 0 {
		panic(fmt.Sprintf("LookAheadMask: qSeqLen must be positive, got %d", qSeqLen))
	}
	if mSeqLen < 0 {
		panic(fmt.Sprintf("LookAheadMask: mSeqLen must be non-negative, got %d", mSeqLen))
	}

	kSeqLen := mSeqLen + qSeqLen
	data := make([]float32, qSeqLen*kSeqLen)
	for i := 0; i < qSeqLen; i++ {
		for j := mSeqLen + i + 1; j < kSeqLen; j++ {
			data[i*kSeqLen+j] = 1
		}
	}

	mask, err := tensor.FromSlice(data, tensor.Shape{1, 1, qSeqLen, kSeqLen}, backend)
	if err != nil {
		panic(fmt.Sprintf("LookAheadMask: %v", err))
	}
	return mask
}
