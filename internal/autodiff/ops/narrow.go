package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// NarrowOp represents slicing along a dimension: out = x[start:start+length].
//
// Backward: embed the gradient in a zero tensor of the input shape, which is
// exactly a pad with `start` leading and `size-start-length` trailing zeros.
type NarrowOp struct {
	input         *tensor.RawTensor
	dim           int // normalized
	start, length int
	output        *tensor.RawTensor
}

// NewNarrowOp creates a new NarrowOp. dim must already be normalized.
func NewNarrowOp(input *tensor.RawTensor, dim, start, length int, output *tensor.RawTensor) *NarrowOp {
	return &NarrowOp{input: input, dim: dim, start: start, length: length, output: output}
}

// Backward pads the gradient back to the input shape.
func (op *NarrowOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	after := op.input.Shape()[op.dim] - op.start - op.length
	return []*tensor.RawTensor{backend.Pad(outputGrad, op.dim, op.start, after)}
}

// Inputs returns the input tensor [x].
func (op *NarrowOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the sliced output tensor.
func (op *NarrowOp) Output() *tensor.RawTensor {
	return op.output
}
