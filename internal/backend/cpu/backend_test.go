package cpu

import (
	"testing"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// Helper to create a float32 RawTensor with data.
func rawFromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

// Helper to check float32 slices are equal within epsilon.
func float32SliceEqual(a, b []float32) bool {
	const epsilon = 1e-5
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > epsilon {
			return false
		}
	}
	return true
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Expected name 'CPU', got '%s'", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected device CPU, got %v", backend.Device())
	}
}

func TestCPUBackend_Add(t *testing.T) {
	backend := New()

	t.Run("SameShape", func(t *testing.T) {
		a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
		b := rawFromFloat32(t, []float32{10, 11, 12, 13, 14, 15}, tensor.Shape{2, 3})

		result := backend.Add(a, b)

		expected := []float32{11, 13, 15, 17, 19, 21}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Add failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("BroadcastRow", func(t *testing.T) {
		a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
		b := rawFromFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

		result := backend.Add(a, b)

		expected := []float32{11, 22, 33, 14, 25, 36}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Broadcast Add failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("BroadcastLeadingDims", func(t *testing.T) {
		// Mask [1, 1, 2, 2] broadcast over scores [2, 1, 2, 2].
		a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 1, 2, 2})
		b := rawFromFloat32(t, []float32{10, 0, 0, 10}, tensor.Shape{1, 1, 2, 2})

		result := backend.Add(a, b)

		expected := []float32{11, 2, 3, 14, 15, 6, 7, 18}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("Broadcast Add failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("IncompatibleShapes", func(t *testing.T) {
		a := rawFromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
		b := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2})

		defer func() {
			if recover() == nil {
				t.Error("Add with incompatible shapes should panic")
			}
		}()
		backend.Add(a, b)
	})
}

func TestCPUBackend_SubMul(t *testing.T) {
	backend := New()

	a := rawFromFloat32(t, []float32{5, 6, 7}, tensor.Shape{3})
	b := rawFromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	if got := backend.Sub(a, b).AsFloat32(); !float32SliceEqual(got, []float32{4, 4, 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := backend.Mul(a, b).AsFloat32(); !float32SliceEqual(got, []float32{5, 12, 21}) {
		t.Errorf("Mul failed: got %v", got)
	}
}

func TestCPUBackend_MulScalar(t *testing.T) {
	backend := New()

	t.Run("Float32", func(t *testing.T) {
		x := rawFromFloat32(t, []float32{1, -2, 3}, tensor.Shape{3})

		result := backend.MulScalar(x, float32(2.5))

		expected := []float32{2.5, -5, 7.5}
		if !float32SliceEqual(result.AsFloat32(), expected) {
			t.Errorf("MulScalar failed: got %v, expected %v", result.AsFloat32(), expected)
		}
	})

	t.Run("Float64", func(t *testing.T) {
		x, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU)
		data := x.AsFloat64()
		data[0], data[1] = 1.5, -3

		result := backend.MulScalar(x, 2.0)

		got := result.AsFloat64()
		if got[0] != 3 || got[1] != -6 {
			t.Errorf("MulScalar float64 failed: got %v", got)
		}
	})

	t.Run("Int32", func(t *testing.T) {
		x, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.CPU)
		data := x.AsInt32()
		data[0], data[1] = 3, -4

		result := backend.MulScalar(x, int32(2))

		got := result.AsInt32()
		if got[0] != 6 || got[1] != -8 {
			t.Errorf("MulScalar int32 failed: got %v", got)
		}
	})
}
