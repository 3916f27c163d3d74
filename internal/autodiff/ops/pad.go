package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// PadOp represents zero-padding along a dimension.
//
// Backward: the padded positions contributed nothing, so the input gradient
// is the narrow of the output gradient over the original extent.
type PadOp struct {
	input         *tensor.RawTensor
	dim           int // normalized
	before, after int
	output        *tensor.RawTensor
}

// NewPadOp creates a new PadOp. dim must already be normalized.
func NewPadOp(input *tensor.RawTensor, dim, before, after int, output *tensor.RawTensor) *PadOp {
	return &PadOp{input: input, dim: dim, before: before, after: after, output: output}
}

// Backward narrows the gradient to the unpadded extent.
func (op *PadOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Narrow(outputGrad, op.dim, op.before, op.input.Shape()[op.dim])}
}

// Inputs returns the input tensor [x].
func (op *PadOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the padded output tensor.
func (op *PadOp) Output() *tensor.RawTensor {
	return op.output
}
