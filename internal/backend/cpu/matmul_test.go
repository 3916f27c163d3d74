package cpu

import (
	"testing"

	"github.com/relmem-ml/relmem/internal/tensor"
)

func TestCPUBackend_BatchMatMul(t *testing.T) {
	backend := New()

	t.Run("3D", func(t *testing.T) {
		// Batch of 2: [2, 2, 3] @ [2, 3, 2] -> [2, 2, 2]
		a := rawFromFloat32(t, []float32{
			1, 2, 3,
			4, 5, 6,

			1, 0, 0,
			0, 1, 0,
		}, tensor.Shape{2, 2, 3})
		b := rawFromFloat32(t, []float32{
			7, 8,
			9, 10,
			11, 12,

			1, 2,
			3, 4,
			5, 6,
		}, tensor.Shape{2, 3, 2})

		result := backend.BatchMatMul(a, b)

		if !result.Shape().Equal(tensor.Shape{2, 2, 2}) {
			t.Fatalf("BatchMatMul shape = %v, want [2 2 2]", result.Shape())
		}

		expected := []float32{
			58, 64,
			139, 154,

			1, 2,
			3, 4,
		}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("BatchMatMul failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("4D", func(t *testing.T) {
		// [1, 2, 1, 2] @ [1, 2, 2, 1] -> [1, 2, 1, 1]
		a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 2, 1, 2})
		b := rawFromFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{1, 2, 2, 1})

		result := backend.BatchMatMul(a, b)

		if !result.Shape().Equal(tensor.Shape{1, 2, 1, 1}) {
			t.Fatalf("BatchMatMul shape = %v, want [1 2 1 1]", result.Shape())
		}
		// 1*5+2*6=17, 3*7+4*8=53
		if !float32SliceEqual(result.AsFloat32(), []float32{17, 53}) {
			t.Errorf("BatchMatMul 4D failed: got %v", result.AsFloat32())
		}
	})

	t.Run("InnerMismatch", func(t *testing.T) {
		a := rawFromFloat32(t, make([]float32, 6), tensor.Shape{1, 2, 3})
		b := rawFromFloat32(t, make([]float32, 4), tensor.Shape{1, 2, 2})

		defer func() {
			if recover() == nil {
				t.Error("BatchMatMul with inner dimension mismatch should panic")
			}
		}()
		backend.BatchMatMul(a, b)
	})

	t.Run("2DRejected", func(t *testing.T) {
		a := rawFromFloat32(t, make([]float32, 4), tensor.Shape{2, 2})
		b := rawFromFloat32(t, make([]float32, 4), tensor.Shape{2, 2})

		defer func() {
			if recover() == nil {
				t.Error("BatchMatMul on 2D tensors should panic")
			}
		}()
		backend.BatchMatMul(a, b)
	})
}
