package cpu

import (
	"fmt"
	"math"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// Sin computes the element-wise sine.
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("sin", x, math.Sin)
}

// Cos computes the element-wise cosine.
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("cos", x, math.Cos)
}

// unaryFloat applies an element-wise function to a float tensor.
func (cpu *CPUBackend) unaryFloat(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(f(float64(v)))
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = f(v)
		}
	default:
		panic(fmt.Sprintf("%s: only supports float32 and float64, got %s", name, x.DType()))
	}

	return result
}

// Softmax normalizes along the last dimension with max-shifting for
// numerical stability. dim must be -1 or ndim-1.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	ndim := len(x.Shape())
	if dim != -1 && dim != ndim-1 {
		panic(fmt.Sprintf("softmax: only the last dimension is supported, got dim=%d for %dD tensor", dim, ndim))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}

	width := x.Shape()[ndim-1]
	rows := x.NumElements() / width

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for r := 0; r < rows; r++ {
			softmaxRow(src[r*width:(r+1)*width], dst[r*width:(r+1)*width])
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for r := 0; r < rows; r++ {
			softmaxRow(src[r*width:(r+1)*width], dst[r*width:(r+1)*width])
		}
	default:
		panic(fmt.Sprintf("softmax: only supports float32 and float64, got %s", x.DType()))
	}

	return result
}

func softmaxRow[F float32 | float64](src, dst []F) {
	maxVal := src[0]
	for _, v := range src[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	var sum F
	for i, v := range src {
		e := F(math.Exp(float64(v - maxVal)))
		dst[i] = e
		sum += e
	}
	for i := range dst {
		dst[i] /= sum
	}
}
