// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y },
		func(x, y int32) int32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y },
		func(x, y int32) int32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y },
		func(x, y int32) int32 { return x * y })
}

// MulScalar multiplies every element by a scalar.
// The scalar must be convertible to the tensor's dtype.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		s := toFloat64(scalar)
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = v * float32(s)
		}
	case tensor.Float64:
		s := toFloat64(scalar)
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = v * s
		}
	case tensor.Int32:
		s, ok := scalar.(int32)
		if !ok {
			panic(fmt.Sprintf("mulscalar: scalar %T not usable with int32 tensor", scalar))
		}
		src := x.AsInt32()
		dst := result.AsInt32()
		for i, v := range src {
			dst[i] = v * s
		}
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// toFloat64 widens a numeric scalar for the float paths.
func toFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	case int32:
		return float64(s)
	default:
		panic(fmt.Sprintf("scalar type %T not supported", scalar))
	}
}

// binary applies an element-wise binary operation with broadcasting.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
	i32 func(x, y int32) int32,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	if !needsBroadcast {
		// Fast path: identical shapes, flat loop.
		switch a.DType() {
		case tensor.Float32:
			x, y, z := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
			for i := range z {
				z[i] = f32(x[i], y[i])
			}
		case tensor.Float64:
			x, y, z := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
			for i := range z {
				z[i] = f64(x[i], y[i])
			}
		case tensor.Int32:
			x, y, z := a.AsInt32(), b.AsInt32(), result.AsInt32()
			for i := range z {
				z[i] = i32(x[i], y[i])
			}
		}
		return result
	}

	outStrides := outShape.ComputeStrides()
	aIndex := broadcastIndexer(a.Shape(), outShape)
	bIndex := broadcastIndexer(b.Shape(), outShape)

	switch a.DType() {
	case tensor.Float32:
		x, y, z := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := range z {
			z[i] = f32(x[aIndex(i, outStrides)], y[bIndex(i, outStrides)])
		}
	case tensor.Float64:
		x, y, z := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := range z {
			z[i] = f64(x[aIndex(i, outStrides)], y[bIndex(i, outStrides)])
		}
	case tensor.Int32:
		x, y, z := a.AsInt32(), b.AsInt32(), result.AsInt32()
		for i := range z {
			z[i] = i32(x[aIndex(i, outStrides)], y[bIndex(i, outStrides)])
		}
	}

	return result
}

// broadcastIndexer maps a flat index in the broadcast output shape to the
// corresponding flat index in a (possibly lower-rank, size-1-padded) source.
func broadcastIndexer(src, out tensor.Shape) func(flat int, outStrides []int) int {
	srcStrides := src.ComputeStrides()
	offset := len(out) - len(src) // source dims are right-aligned

	return func(flat int, outStrides []int) int {
		idx := 0
		for d := 0; d < len(out); d++ {
			coord := flat / outStrides[d]
			flat %= outStrides[d]

			sd := d - offset
			if sd < 0 {
				continue
			}
			if src[sd] == 1 {
				continue // broadcast dimension, coordinate pinned to 0
			}
			idx += coord * srcStrides[sd]
		}
		return idx
	}
}
