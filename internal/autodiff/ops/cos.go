package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// CosOp represents the cosine operation: y = cos(x).
//
// Backward: d(cos(x))/dx = -sin(x).
type CosOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewCosOp creates a new CosOp.
func NewCosOp(input, output *tensor.RawTensor) *CosOp {
	return &CosOp{input: input, output: output}
}

// Backward computes the input gradient: -grad * sin(input).
func (op *CosOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := backend.Mul(outputGrad, backend.Sin(op.input))
	return []*tensor.RawTensor{backend.MulScalar(grad, -1)}
}

// Inputs returns the input tensor [x].
func (op *CosOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor cos(x).
func (op *CosOp) Output() *tensor.RawTensor {
	return op.output
}
