package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// SubOp represents element-wise subtraction: out = a - b.
//
// Backward: d(a-b)/da = 1, d(a-b)/db = -1.
type SubOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{a: a, b: b, output: output}
}

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	negGrad := backend.MulScalar(outputGrad, -1)
	return []*tensor.RawTensor{
		reduceToShape(outputGrad, op.a.Shape(), backend),
		reduceToShape(negGrad, op.b.Shape(), backend),
	}
}

// Inputs returns the input tensors [a, b].
func (op *SubOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the output tensor.
func (op *SubOp) Output() *tensor.RawTensor {
	return op.output
}
