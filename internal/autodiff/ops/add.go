package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// AddOp represents element-wise addition: out = a + b.
//
// Backward: gradient flows unchanged to both inputs, summed over any
// broadcast dimensions.
type AddOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, output: output}
}

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceToShape(outputGrad, op.a.Shape(), backend),
		reduceToShape(outputGrad, op.b.Shape(), backend),
	}
}

// Inputs returns the input tensors [a, b].
func (op *AddOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the output tensor.
func (op *AddOp) Output() *tensor.RawTensor {
	return op.output
}
