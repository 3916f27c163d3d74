package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// CatOp represents concatenation along a dimension.
//
// Backward: split the output gradient along the concat dimension at the
// input boundaries; each input receives its own slice.
type CatOp struct {
	inputs []*tensor.RawTensor
	dim    int   // normalized concat dimension
	sizes  []int // size of each input along dim
	output *tensor.RawTensor
}

// NewCatOp creates a new CatOp. dim must already be normalized.
func NewCatOp(inputs []*tensor.RawTensor, dim int, sizes []int, output *tensor.RawTensor) *CatOp {
	return &CatOp{inputs: inputs, dim: dim, sizes: sizes, output: output}
}

// Backward slices the output gradient back into per-input gradients.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grads := make([]*tensor.RawTensor, len(op.inputs))
	offset := 0
	for i, size := range op.sizes {
		grads[i] = backend.Narrow(outputGrad, op.dim, offset, size)
		offset += size
	}
	return grads
}

// Inputs returns the concatenated input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the concatenated output tensor.
func (op *CatOp) Output() *tensor.RawTensor {
	return op.output
}
