package ops

import "github.com/relmem-ml/relmem/internal/tensor"

// BatchMatMulOp represents batched matrix multiplication: C = A @ B.
//
// Backward:
//
//	dL/dA = dL/dC @ B^T
//	dL/dB = A^T @ dL/dC
//
// where ^T swaps the last two dimensions of each batch.
type BatchMatMulOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

// NewBatchMatMulOp creates a new BatchMatMulOp.
func NewBatchMatMulOp(a, b, output *tensor.RawTensor) *BatchMatMulOp {
	return &BatchMatMulOp{a: a, b: b, output: output}
}

// Backward computes input gradients for batched matmul.
func (op *BatchMatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	ndim := len(op.a.Shape())
	axes := swapLastAxes(ndim)

	gradA := backend.BatchMatMul(outputGrad, backend.Transpose(op.b, axes...))
	gradB := backend.BatchMatMul(backend.Transpose(op.a, axes...), outputGrad)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *BatchMatMulOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the output tensor.
func (op *BatchMatMulOp) Output() *tensor.RawTensor {
	return op.output
}
