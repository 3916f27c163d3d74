package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// MulScalarOp represents scalar multiplication: out = x * s.
//
// Backward: d(x*s)/dx = s.
type MulScalarOp struct {
	input  *tensor.RawTensor
	scalar any
	output *tensor.RawTensor
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(input *tensor.RawTensor, scalar any, output *tensor.RawTensor) *MulScalarOp {
	return &MulScalarOp{input: input, scalar: scalar, output: output}
}

// Backward computes the input gradient: grad * s.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// Inputs returns the input tensor [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *MulScalarOp) Output() *tensor.RawTensor {
	return op.output
}
