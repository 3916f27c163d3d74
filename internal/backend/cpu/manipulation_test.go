package cpu

import (
	"testing"

	"github.com/relmem-ml/relmem/internal/tensor"
)

func TestCPUBackend_Reshape(t *testing.T) {
	backend := New()

	x := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	reshaped := backend.Reshape(x, tensor.Shape{3, 2})

	if !reshaped.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Reshape shape = %v, want [3 2]", reshaped.Shape())
	}

	// Zero-copy: mutating the view is visible through the original.
	reshaped.AsFloat32()[0] = 42
	if x.AsFloat32()[0] != 42 {
		t.Error("Reshape should return a view over the same buffer")
	}

	t.Run("ElementMismatch", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Reshape with different element count should panic")
			}
		}()
		backend.Reshape(x, tensor.Shape{4, 2})
	})
}

func TestCPUBackend_Transpose(t *testing.T) {
	backend := New()

	t.Run("Default2D", func(t *testing.T) {
		x := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

		result := backend.Transpose(x)

		if !result.Shape().Equal(tensor.Shape{3, 2}) {
			t.Fatalf("Transpose shape = %v, want [3 2]", result.Shape())
		}
		if !float32SliceEqual(result.AsFloat32(), []float32{1, 4, 2, 5, 3, 6}) {
			t.Errorf("Transpose failed: got %v", result.AsFloat32())
		}
	})

	t.Run("SwapLastTwoOf3D", func(t *testing.T) {
		x := rawFromFloat32(t, []float32{
			1, 2,
			3, 4,

			5, 6,
			7, 8,
		}, tensor.Shape{2, 2, 2})

		result := backend.Transpose(x, 0, 2, 1)

		expected := []float32{
			1, 3,
			2, 4,

			5, 7,
			6, 8,
		}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Transpose(0,2,1) failed: got %v", result.AsFloat32())
		}
	})

	t.Run("DuplicateAxis", func(t *testing.T) {
		x := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
		defer func() {
			if recover() == nil {
				t.Error("Transpose with duplicate axis should panic")
			}
		}()
		backend.Transpose(x, 0, 0)
	})
}

func TestCPUBackend_Cat(t *testing.T) {
	backend := New()

	t.Run("TimeDimension", func(t *testing.T) {
		// [1, 2, 2] + [1, 3, 2] along dim 1 -> [1, 5, 2]
		a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
		b := rawFromFloat32(t, []float32{5, 6, 7, 8, 9, 10}, tensor.Shape{1, 3, 2})

		result := backend.Cat([]*tensor.RawTensor{a, b}, 1)

		if !result.Shape().Equal(tensor.Shape{1, 5, 2}) {
			t.Fatalf("Cat shape = %v, want [1 5 2]", result.Shape())
		}
		expected := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Cat failed: got %v", result.AsFloat32())
		}
	})

	t.Run("LastDimension", func(t *testing.T) {
		a := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2, 1})
		b := rawFromFloat32(t, []float32{3, 4}, tensor.Shape{2, 1})

		result := backend.Cat([]*tensor.RawTensor{a, b}, -1)

		if !float32SliceEqual(result.AsFloat32(), []float32{1, 3, 2, 4}) {
			t.Errorf("Cat along last dim failed: got %v", result.AsFloat32())
		}
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		a := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})
		b := rawFromFloat32(t, []float32{1, 2, 3}, tensor.Shape{1, 3})

		defer func() {
			if recover() == nil {
				t.Error("Cat with mismatched non-cat dimensions should panic")
			}
		}()
		backend.Cat([]*tensor.RawTensor{a, b}, 0)
	})
}

func TestCPUBackend_Narrow(t *testing.T) {
	backend := New()

	x := rawFromFloat32(t, []float32{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	}, tensor.Shape{1, 4, 2})

	t.Run("Tail", func(t *testing.T) {
		result := backend.Narrow(x, 1, 2, 2)

		if !result.Shape().Equal(tensor.Shape{1, 2, 2}) {
			t.Fatalf("Narrow shape = %v, want [1 2 2]", result.Shape())
		}
		if !float32SliceEqual(result.AsFloat32(), []float32{5, 6, 7, 8}) {
			t.Errorf("Narrow failed: got %v", result.AsFloat32())
		}
	})

	t.Run("CopyNotView", func(t *testing.T) {
		result := backend.Narrow(x, 1, 0, 1)
		result.AsFloat32()[0] = 99
		if x.AsFloat32()[0] == 99 {
			t.Error("Narrow should copy, not alias the source buffer")
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Narrow past the end should panic")
			}
		}()
		backend.Narrow(x, 1, 3, 2)
	})
}

func TestCPUBackend_Pad(t *testing.T) {
	backend := New()

	t.Run("LeadingColumn", func(t *testing.T) {
		x := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

		result := backend.Pad(x, -1, 1, 0)

		if !result.Shape().Equal(tensor.Shape{2, 3}) {
			t.Fatalf("Pad shape = %v, want [2 3]", result.Shape())
		}
		if !float32SliceEqual(result.AsFloat32(), []float32{0, 1, 2, 0, 3, 4}) {
			t.Errorf("Pad failed: got %v", result.AsFloat32())
		}
	})

	t.Run("BothSides", func(t *testing.T) {
		x := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2})

		result := backend.Pad(x, 0, 1, 2)

		if !float32SliceEqual(result.AsFloat32(), []float32{0, 1, 2, 0, 0}) {
			t.Errorf("Pad both sides failed: got %v", result.AsFloat32())
		}
	})

	t.Run("NegativePadding", func(t *testing.T) {
		x := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2})
		defer func() {
			if recover() == nil {
				t.Error("Pad with negative padding should panic")
			}
		}()
		backend.Pad(x, 0, -1, 0)
	})
}
