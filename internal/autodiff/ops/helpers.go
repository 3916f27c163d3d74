package ops

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// reduceToShape sums a gradient over broadcast dimensions so it matches the
// shape of the operation input it belongs to. If the shapes already match,
// the gradient is returned as is.
//
// Broadcasting during the forward pass fans one input element out to many
// output elements; the chain rule requires the corresponding output
// gradients to be summed back into that element.
func reduceToShape(grad *tensor.RawTensor, shape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(shape) {
		return grad
	}

	result, err := tensor.NewRaw(shape, grad.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("reduce grad: %v", err))
	}

	gradShape := grad.Shape()
	gradStrides := gradShape.ComputeStrides()
	dstStrides := shape.ComputeStrides()
	offset := len(gradShape) - len(shape) // input dims are right-aligned

	// For every gradient element, accumulate into the input position it was
	// broadcast from.
	switch grad.DType() {
	case tensor.Float32:
		src := grad.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[broadcastSource(i, gradStrides, dstStrides, shape, offset)] += v
		}
	case tensor.Float64:
		src := grad.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[broadcastSource(i, gradStrides, dstStrides, shape, offset)] += v
		}
	default:
		panic(fmt.Sprintf("reduce grad: unsupported dtype %s", grad.DType()))
	}

	return result
}

// broadcastSource maps a flat output index to the flat index of the input
// element it was broadcast from.
func broadcastSource(flat int, outStrides, srcStrides []int, srcShape tensor.Shape, offset int) int {
	idx := 0
	for d := 0; d < len(outStrides); d++ {
		coord := flat / outStrides[d]
		flat %= outStrides[d]

		sd := d - offset
		if sd < 0 || srcShape[sd] == 1 {
			continue
		}
		idx += coord * srcStrides[sd]
	}
	return idx
}

// swapLastAxes returns the axes permutation that swaps the last two
// dimensions of an ndim tensor (used for matmul backward).
func swapLastAxes(ndim int) []int {
	axes := make([]int, ndim)
	for i := range axes {
		axes[i] = i
	}
	axes[ndim-2], axes[ndim-1] = axes[ndim-1], axes[ndim-2]
	return axes
}
