package tensor

import "testing"

// Method-level tests against MockBackend; the CPU backend has its own
// kernel tests.

func fromSlice32(t *testing.T, data []float32, shape Shape) *Tensor[float32, *MockBackend] {
	t.Helper()
	tsr, err := FromSlice(data, shape, NewMockBackend())
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return tsr
}

func assertData(t *testing.T, expected []float32, actual *Tensor[float32, *MockBackend], msg string) {
	t.Helper()
	got := actual.Data()
	if len(got) != len(expected) {
		t.Fatalf("%s: expected %d elements, got %d", msg, len(expected), len(got))
	}
	for i := range expected {
		assertEqualFloat32(t, expected[i], got[i], msg)
	}
}

func TestTensorAdd(t *testing.T) {
	a := fromSlice32(t, []float32{1, 2, 3, 4}, Shape{2, 2})
	b := fromSlice32(t, []float32{10, 20, 30, 40}, Shape{2, 2})

	assertData(t, []float32{11, 22, 33, 44}, a.Add(b), "Add")
}

func TestTensorAddBroadcast(t *testing.T) {
	a := fromSlice32(t, []float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := fromSlice32(t, []float32{10, 20, 30}, Shape{1, 3})

	result := a.Add(b)
	assertEqualShape(t, Shape{2, 3}, result.Shape(), "broadcast shape")
	assertData(t, []float32{11, 22, 33, 14, 25, 36}, result, "broadcast Add")
}

func TestTensorSubMul(t *testing.T) {
	a := fromSlice32(t, []float32{5, 6, 7}, Shape{3})
	b := fromSlice32(t, []float32{1, 2, 3}, Shape{3})

	assertData(t, []float32{4, 4, 4}, a.Sub(b), "Sub")
	assertData(t, []float32{5, 12, 21}, a.Mul(b), "Mul")
}

func TestTensorMulScalar(t *testing.T) {
	a := fromSlice32(t, []float32{1, -2, 3}, Shape{3})
	assertData(t, []float32{2, -4, 6}, a.MulScalar(2), "MulScalar")
}

func TestTensorReshape(t *testing.T) {
	a := fromSlice32(t, []float32{1, 2, 3, 4, 5, 6}, Shape{6})

	reshaped := a.Reshape(2, 3)
	assertEqualShape(t, Shape{2, 3}, reshaped.Shape(), "Reshape shape")
	assertData(t, []float32{1, 2, 3, 4, 5, 6}, reshaped, "Reshape data order")
}

func TestTensorTranspose(t *testing.T) {
	a := fromSlice32(t, []float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	transposed := a.Transpose()
	assertEqualShape(t, Shape{3, 2}, transposed.Shape(), "Transpose shape")
	assertData(t, []float32{1, 4, 2, 5, 3, 6}, transposed, "Transpose data")
}

func TestTensorNarrow(t *testing.T) {
	a := fromSlice32(t, []float32{1, 2, 3, 4, 5, 6}, Shape{3, 2})

	tail := a.Narrow(0, 1, 2)
	assertEqualShape(t, Shape{2, 2}, tail.Shape(), "Narrow shape")
	assertData(t, []float32{3, 4, 5, 6}, tail, "Narrow data")

	last := a.Narrow(-1, 1, 1)
	assertEqualShape(t, Shape{3, 1}, last.Shape(), "Narrow negative dim shape")
	assertData(t, []float32{2, 4, 6}, last, "Narrow negative dim data")
}

func TestTensorPad(t *testing.T) {
	a := fromSlice32(t, []float32{1, 2, 3, 4}, Shape{2, 2})

	padded := a.Pad(-1, 1, 0)
	assertEqualShape(t, Shape{2, 3}, padded.Shape(), "Pad shape")
	assertData(t, []float32{0, 1, 2, 0, 3, 4}, padded, "Pad data")
}

func TestTensorCat(t *testing.T) {
	a := fromSlice32(t, []float32{1, 2}, Shape{1, 2})
	b := fromSlice32(t, []float32{3, 4, 5, 6}, Shape{2, 2})

	joined := Cat([]*Tensor[float32, *MockBackend]{a, b}, 0)
	assertEqualShape(t, Shape{3, 2}, joined.Shape(), "Cat shape")
	assertData(t, []float32{1, 2, 3, 4, 5, 6}, joined, "Cat data")

	t.Run("LastDim", func(t *testing.T) {
		x := fromSlice32(t, []float32{1, 2}, Shape{2, 1})
		y := fromSlice32(t, []float32{3, 4}, Shape{2, 1})
		joined := Cat([]*Tensor[float32, *MockBackend]{x, y}, -1)
		assertEqualShape(t, Shape{2, 2}, joined.Shape(), "Cat last dim shape")
		assertData(t, []float32{1, 3, 2, 4}, joined, "Cat last dim data")
	})

	t.Run("Empty", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Cat with no tensors should panic")
			}
		}()
		Cat([]*Tensor[float32, *MockBackend]{}, 0)
	})
}

func TestTensorSoftmax(t *testing.T) {
	a := fromSlice32(t, []float32{1, 1, 1, 1}, Shape{2, 2})

	result := a.Softmax(-1)
	assertData(t, []float32{0.5, 0.5, 0.5, 0.5}, result, "uniform Softmax")
}
