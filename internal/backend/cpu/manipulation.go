package cpu

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation
// dimension. Supports negative dim indexing (-1 = last dimension).
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()
	dim = shape.NormalizeDim(dim)

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Row-major layout: for every index of the dimensions before `dim`, each
	// input contributes one contiguous block of shape[dim]*inner elements.
	es := dtype.Size()
	inner := innerSize(shape, dim) * es
	outer := outerSize(shape, dim)
	outBlock := totalDim * inner
	dstData := result.Data()

	for o := 0; o < outer; o++ {
		dstOff := o * outBlock
		for _, t := range tensors {
			block := t.Shape()[dim] * inner
			copy(dstData[dstOff:dstOff+block], t.Data()[o*block:(o+1)*block])
			dstOff += block
		}
	}

	return result
}

// Narrow slices the tensor along dim to [start, start+length).
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)

	if start < 0 || length <= 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension %d (size %d)",
			start, start+length, dim, shape[dim]))
	}

	outShape := shape.Clone()
	outShape[dim] = length

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}

	es := x.DType().Size()
	inner := innerSize(shape, dim) * es
	outer := outerSize(shape, dim)
	srcBlock := shape[dim] * inner
	dstBlock := length * inner
	srcData := x.Data()
	dstData := result.Data()

	for o := 0; o < outer; o++ {
		srcOff := o*srcBlock + start*inner
		copy(dstData[o*dstBlock:(o+1)*dstBlock], srcData[srcOff:srcOff+dstBlock])
	}

	return result
}

// Pad zero-pads the tensor along dim with `before` leading and `after`
// trailing positions.
func (cpu *CPUBackend) Pad(x *tensor.RawTensor, dim, before, after int) *tensor.RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)

	if before < 0 || after < 0 {
		panic(fmt.Sprintf("pad: negative padding (%d, %d)", before, after))
	}

	outShape := shape.Clone()
	outShape[dim] = before + shape[dim] + after

	// NewRaw zero-initializes, so only the source block needs copying.
	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("pad: %v", err))
	}

	es := x.DType().Size()
	inner := innerSize(shape, dim) * es
	outer := outerSize(shape, dim)
	srcBlock := shape[dim] * inner
	dstBlock := outShape[dim] * inner
	srcData := x.Data()
	dstData := result.Data()

	for o := 0; o < outer; o++ {
		dstOff := o*dstBlock + before*inner
		copy(dstData[dstOff:dstOff+srcBlock], srcData[o*srcBlock:(o+1)*srcBlock])
	}

	return result
}

// outerSize is the product of dimensions before dim.
func outerSize(shape tensor.Shape, dim int) int {
	n := 1
	for d := 0; d < dim; d++ {
		n *= shape[d]
	}
	return n
}

// innerSize is the product of dimensions after dim.
func innerSize(shape tensor.Shape, dim int) int {
	n := 1
	for d := dim + 1; d < len(shape); d++ {
		n *= shape[d]
	}
	return n
}
