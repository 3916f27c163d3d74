package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// SinOp represents the sine operation: y = sin(x).
//
// Backward: d(sin(x))/dx = cos(x).
type SinOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSinOp creates a new SinOp.
func NewSinOp(input, output *tensor.RawTensor) *SinOp {
	return &SinOp{input: input, output: output}
}

// Backward computes the input gradient: grad * cos(input).
func (op *SinOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Cos(op.input))}
}

// Inputs returns the input tensor [x].
func (op *SinOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor sin(x).
func (op *SinOp) Output() *tensor.RawTensor {
	return op.output
}
