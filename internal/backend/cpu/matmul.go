package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication over the last two
// dimensions of 3D or 4D tensors. The leading (batch) dimensions must match.
//
// The per-batch GEMM is delegated to gonum's BLAS implementation.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	ndim := len(aShape)

	if ndim != 3 && ndim != 4 {
		panic(fmt.Sprintf("batchmatmul: expected 3D or 4D tensors, got %dD", ndim))
	}
	if len(bShape) != ndim {
		panic(fmt.Sprintf("batchmatmul: rank mismatch %dD vs %dD", ndim, len(bShape)))
	}
	for d := 0; d < ndim-2; d++ {
		if aShape[d] != bShape[d] {
			panic(fmt.Sprintf("batchmatmul: batch dimension %d mismatch: %d vs %d", d, aShape[d], bShape[d]))
		}
	}

	m, k := aShape[ndim-2], aShape[ndim-1]
	if bShape[ndim-2] != k {
		panic(fmt.Sprintf("batchmatmul: inner dimension mismatch: %v @ %v", aShape, bShape))
	}
	n := bShape[ndim-1]

	batch := 1
	for d := 0; d < ndim-2; d++ {
		batch *= aShape[d]
	}

	outShape := aShape.Clone()
	outShape[ndim-1] = n
	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("batchmatmul: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		aData, bData, cData := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := 0; i < batch; i++ {
			blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
				blas32.General{Rows: m, Cols: k, Stride: k, Data: aData[i*m*k : (i+1)*m*k]},
				blas32.General{Rows: k, Cols: n, Stride: n, Data: bData[i*k*n : (i+1)*k*n]},
				0,
				blas32.General{Rows: m, Cols: n, Stride: n, Data: cData[i*m*n : (i+1)*m*n]})
		}
	case tensor.Float64:
		aData, bData, cData := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := 0; i < batch; i++ {
			blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
				blas64.General{Rows: m, Cols: k, Stride: k, Data: aData[i*m*k : (i+1)*m*k]},
				blas64.General{Rows: k, Cols: n, Stride: n, Data: bData[i*k*n : (i+1)*k*n]},
				0,
				blas64.General{Rows: m, Cols: n, Stride: n, Data: cData[i*m*n : (i+1)*m*n]})
		}
	default:
		panic(fmt.Sprintf("batchmatmul: only supports float32 and float64, got %s", a.DType()))
	}

	return result
}
