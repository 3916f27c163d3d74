package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	assertEqualShape(t, Shape{2, 3}, raw.Shape(), "NewRaw shape")
	if raw.DType() != Float32 {
		t.Errorf("DType() = %s, want float32", raw.DType())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize() = %d, want 24", raw.ByteSize())
	}

	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("NewRaw[%d] = %v, want 0 (zero-initialized)", i, v)
		}
	}

	t.Run("InvalidShape", func(t *testing.T) {
		if _, err := NewRaw(Shape{0, 3}, Float32, CPU); err == nil {
			t.Error("NewRaw should reject zero dimension")
		}
	})
}

func TestRawTensorTypedAccess(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float64, CPU)

	data := raw.AsFloat64()
	data[0], data[1] = 1.5, 2.5
	if raw.AsFloat64()[1] != 2.5 {
		t.Error("AsFloat64 should view the underlying buffer")
	}

	t.Run("WrongDType", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("AsFloat32 on a float64 tensor should panic")
			}
		}()
		raw.AsFloat32()
	})
}

func TestRawTensorClone(t *testing.T) {
	raw, _ := NewRaw(Shape{3}, Int32, CPU)
	raw.AsInt32()[0] = 7

	clone := raw.Clone()
	clone.AsInt32()[0] = 99

	if raw.AsInt32()[0] != 7 {
		t.Error("Clone should not share memory with the original")
	}
}

func TestRawTensorWithShape(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 3}, Float32, CPU)
	raw.AsFloat32()[0] = 42

	view := raw.WithShape(Shape{3, 2})
	assertEqualShape(t, Shape{3, 2}, view.Shape(), "WithShape shape")
	if view.AsFloat32()[0] != 42 {
		t.Error("WithShape should share the underlying buffer")
	}

	strides := view.Strides()
	if strides[0] != 2 || strides[1] != 1 {
		t.Errorf("WithShape strides = %v, want [2 1]", strides)
	}

	t.Run("ElementMismatch", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("WithShape with different element count should panic")
			}
		}()
		raw.WithShape(Shape{4, 2})
	})
}
