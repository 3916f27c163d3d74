package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple float32-only backend for testing.
// It implements all operations naively for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

func mockFloat32(name string, t *RawTensor) []float32 {
	if t.DType() != Float32 {
		panic(fmt.Sprintf("MockBackend.%s: only Float32 supported, got %s", name, t.DType()))
	}
	return t.AsFloat32()
}

func mockAlloc(shape Shape) *RawTensor {
	out, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		panic(err)
	}
	return out
}

// coords decomposes a flat index into coordinates for the given shape.
func coords(flat int, shape Shape) []int {
	c := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		c[d] = flat % shape[d]
		flat /= shape[d]
	}
	return c
}

// broadcastFlat maps output coordinates back to a flat index in src,
// right-aligning dimensions and pinning size-1 dimensions to 0.
func broadcastFlat(outCoords []int, src Shape) int {
	offset := len(outCoords) - len(src)
	flat := 0
	for d, size := range src {
		c := outCoords[offset+d]
		if size == 1 {
			c = 0
		}
		flat = flat*size + c
	}
	return flat
}

func (m *MockBackend) elementWise(name string, a, b *RawTensor, op func(x, y float32) float32) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("MockBackend.%s: %v", name, err))
	}

	aData := mockFloat32(name, a)
	bData := mockFloat32(name, b)
	out := mockAlloc(outShape)
	outData := out.AsFloat32()
	for i := range outData {
		c := coords(i, outShape)
		outData[i] = op(aData[broadcastFlat(c, a.Shape())], bData[broadcastFlat(c, b.Shape())])
	}
	return out
}

func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise("Add", a, b, func(x, y float32) float32 { return x + y })
}

func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise("Sub", a, b, func(x, y float32) float32 { return x - y })
}

func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise("Mul", a, b, func(x, y float32) float32 { return x * y })
}

func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	var s float32
	switch v := scalar.(type) {
	case float32:
		s = v
	case float64:
		s = float32(v)
	case int:
		s = float32(v)
	default:
		panic(fmt.Sprintf("MockBackend.MulScalar: unsupported scalar type %T", scalar))
	}

	data := mockFloat32("MulScalar", x)
	out := mockAlloc(x.Shape())
	outData := out.AsFloat32()
	for i, v := range data {
		outData[i] = v * s
	}
	return out
}

func (m *MockBackend) unary(name string, x *RawTensor, f func(float64) float64) *RawTensor {
	data := mockFloat32(name, x)
	out := mockAlloc(x.Shape())
	outData := out.AsFloat32()
	for i, v := range data {
		outData[i] = float32(f(float64(v)))
	}
	return out
}

func (m *MockBackend) Sin(x *RawTensor) *RawTensor {
	return m.unary("Sin", x, math.Sin)
}

func (m *MockBackend) Cos(x *RawTensor) *RawTensor {
	return m.unary("Cos", x, math.Cos)
}

func (m *MockBackend) BatchMatMul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	ndim := len(aShape)
	if ndim < 3 || ndim != len(bShape) {
		panic(fmt.Sprintf("MockBackend.BatchMatMul: incompatible shapes %v and %v", aShape, bShape))
	}

	batch := 1
	for d := 0; d < ndim-2; d++ {
		if aShape[d] != bShape[d] {
			panic(fmt.Sprintf("MockBackend.BatchMatMul: batch dims differ: %v vs %v", aShape, bShape))
		}
		batch *= aShape[d]
	}
	rows, inner, cols := aShape[ndim-2], aShape[ndim-1], bShape[ndim-1]
	if bShape[ndim-2] != inner {
		panic(fmt.Sprintf("MockBackend.BatchMatMul: inner dims differ: %v vs %v", aShape, bShape))
	}

	aData := mockFloat32("BatchMatMul", a)
	bData := mockFloat32("BatchMatMul", b)
	outShape := aShape.Clone()
	outShape[ndim-1] = cols
	out := mockAlloc(outShape)
	outData := out.AsFloat32()

	for n := 0; n < batch; n++ {
		aOff, bOff, oOff := n*rows*inner, n*inner*cols, n*rows*cols
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				var sum float32
				for k := 0; k < inner; k++ {
					sum += aData[aOff+i*inner+k] * bData[bOff+k*cols+j]
				}
				outData[oOff+i*cols+j] = sum
			}
		}
	}
	return out
}

func (m *MockBackend) Softmax(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	if d := shape.NormalizeDim(dim); d != len(shape)-1 {
		panic(fmt.Sprintf("MockBackend.Softmax: only last dim supported, got %d for shape %v", dim, shape))
	}

	data := mockFloat32("Softmax", x)
	out := mockAlloc(shape)
	outData := out.AsFloat32()

	width := shape[len(shape)-1]
	for row := 0; row < len(data)/width; row++ {
		off := row * width
		maxVal := data[off]
		for i := 1; i < width; i++ {
			if data[off+i] > maxVal {
				maxVal = data[off+i]
			}
		}
		var sum float32
		for i := 0; i < width; i++ {
			e := float32(math.Exp(float64(data[off+i] - maxVal)))
			outData[off+i] = e
			sum += e
		}
		for i := 0; i < width; i++ {
			outData[off+i] /= sum
		}
	}
	return out
}

func (m *MockBackend) Reshape(x *RawTensor, newShape Shape) *RawTensor {
	return x.Clone().WithShape(newShape)
}

func (m *MockBackend) Transpose(x *RawTensor, axes ...int) *RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	outShape := make(Shape, ndim)
	for d, a := range axes {
		outShape[d] = shape[a]
	}

	data := mockFloat32("Transpose", x)
	out := mockAlloc(outShape)
	outData := out.AsFloat32()
	srcStrides := shape.ComputeStrides()
	for i := range outData {
		c := coords(i, outShape)
		src := 0
		for d, a := range axes {
			src += c[d] * srcStrides[a]
		}
		outData[i] = data[src]
	}
	return out
}

func (m *MockBackend) Cat(tensors []*RawTensor, dim int) *RawTensor {
	if len(tensors) == 0 {
		panic("MockBackend.Cat: empty tensor list")
	}
	shape := tensors[0].Shape()
	dim = shape.NormalizeDim(dim)

	outShape := shape.Clone()
	outShape[dim] = 0
	for _, t := range tensors {
		outShape[dim] += t.Shape()[dim]
	}

	out := mockAlloc(outShape)
	outData := out.AsFloat32()
	offset := 0
	for _, t := range tensors {
		data := mockFloat32("Cat", t)
		tShape := t.Shape()
		for i, v := range data {
			c := coords(i, tShape)
			c[dim] += offset
			dst := 0
			for d, size := range outShape {
				dst = dst*size + c[d]
			}
			outData[dst] = v
		}
		offset += tShape[dim]
	}
	return out
}

func (m *MockBackend) Narrow(x *RawTensor, dim, start, length int) *RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	if start < 0 || length <= 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("MockBackend.Narrow: invalid range [%d, %d) for dim %d of shape %v",
			start, start+length, dim, shape))
	}

	outShape := shape.Clone()
	outShape[dim] = length
	data := mockFloat32("Narrow", x)
	out := mockAlloc(outShape)
	outData := out.AsFloat32()
	for i := range outData {
		c := coords(i, outShape)
		c[dim] += start
		src := 0
		for d, size := range shape {
			src = src*size + c[d]
		}
		outData[i] = data[src]
	}
	return out
}

func (m *MockBackend) Pad(x *RawTensor, dim, before, after int) *RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	if before < 0 || after < 0 {
		panic(fmt.Sprintf("MockBackend.Pad: negative padding (%d, %d)", before, after))
	}

	outShape := shape.Clone()
	outShape[dim] += before + after
	data := mockFloat32("Pad", x)
	out := mockAlloc(outShape)
	outData := out.AsFloat32()
	for i, v := range data {
		c := coords(i, shape)
		c[dim] += before
		dst := 0
		for d, size := range outShape {
			dst = dst*size + c[d]
		}
		outData[dst] = v
	}
	return out
}
