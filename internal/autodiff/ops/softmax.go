package ops

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// SoftmaxOp represents softmax along the last dimension: s = softmax(x).
//
// Backward (per row):
//
//	dL/dx_j = s_j * (dL/ds_j - Σ_i dL/ds_i * s_i)
type SoftmaxOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSoftmaxOp creates a new SoftmaxOp.
func NewSoftmaxOp(input, output *tensor.RawTensor) *SoftmaxOp {
	return &SoftmaxOp{input: input, output: output}
}

// Backward computes the input gradient for softmax.
func (op *SoftmaxOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	shape := op.output.Shape()
	width := shape[len(shape)-1]
	rows := op.output.NumElements() / width

	gradInput, err := tensor.NewRaw(shape, op.output.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("softmax backward: %v", err))
	}

	switch op.output.DType() {
	case tensor.Float32:
		s := op.output.AsFloat32()
		g := outputGrad.AsFloat32()
		out := gradInput.AsFloat32()
		for r := 0; r < rows; r++ {
			softmaxBackwardRow(s[r*width:(r+1)*width], g[r*width:(r+1)*width], out[r*width:(r+1)*width])
		}
	case tensor.Float64:
		s := op.output.AsFloat64()
		g := outputGrad.AsFloat64()
		out := gradInput.AsFloat64()
		for r := 0; r < rows; r++ {
			softmaxBackwardRow(s[r*width:(r+1)*width], g[r*width:(r+1)*width], out[r*width:(r+1)*width])
		}
	default:
		panic(fmt.Sprintf("softmax backward: unsupported dtype %s", op.output.DType()))
	}

	return []*tensor.RawTensor{gradInput}
}

func softmaxBackwardRow[F float32 | float64](s, g, out []F) {
	var dot F
	for i := range s {
		dot += g[i] * s[i]
	}
	for i := range s {
		out[i] = s[i] * (g[i] - dot)
	}
}

// Inputs returns the input tensor [x].
func (op *SoftmaxOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor softmax(x).
func (op *SoftmaxOp) Output() *tensor.RawTensor {
	return op.output
}
