package xl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmem-ml/relmem/internal/backend/cpu"
	"github.com/relmem-ml/relmem/internal/tensor"
)

func TestLookAheadMask_WithMemory(t *testing.T) {
	backend := cpu.New()

	// Two queries over three memory steps: only the last column of the
	// first row is hidden.
	mask := LookAheadMask(2, 3, backend)

	require.True(t, mask.Shape().Equal(tensor.Shape{1, 1, 2, 5}))

	expected := []float32{
		0, 0, 0, 0, 1,
		0, 0, 0, 0, 0,
	}
	assert.Equal(t, expected, mask.Data())
}

func TestLookAheadMask_NoMemory(t *testing.T) {
	backend := cpu.New()

	// Without memory the query block is a strict upper triangle.
	mask := LookAheadMask(3, 0, backend)

	require.True(t, mask.Shape().Equal(tensor.Shape{1, 1, 3, 3}))

	expected := []float32{
		0, 1, 1,
		0, 0, 1,
		0, 0, 0,
	}
	assert.Equal(t, expected, mask.Data())
}

func TestLookAheadMask_SingleQuery(t *testing.T) {
	backend := cpu.New()

	// A single query sees everything.
	mask := LookAheadMask(1, 4, backend)

	require.True(t, mask.Shape().Equal(tensor.Shape{1, 1, 1, 5}))
	assert.Equal(t, []float32{0, 0, 0, 0, 0}, mask.Data())
}

func TestLookAheadMask_Panics(t *testing.T) {
	backend := cpu.New()

	assert.Panics(t, func() { LookAheadMask(0, 3, backend) }, "zero qSeqLen")
	assert.Panics(t, func() { LookAheadMask(2, -1, backend) }, "negative mSeqLen")
}
