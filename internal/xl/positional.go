package xl

import (
	"fmt"
	"math"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// PositionalEncoding computes the relative sinusoidal positional encoding
// used by Transformer-XL.
//
// Positions are encoded by distance from the *end* of the sequence:
// distances[i] = seqLen-1-i, so the last position has distance 0. With
// invFreq[j] = 10000^(-2j/hiddenSize), the result is the column-wise concat
//
//	[sin(distances ⊗ invFreq) | cos(distances ⊗ invFreq)]
//
// of shape [seqLen, hiddenSize].
//
// seqLen and hiddenSize must be positive and hiddenSize even, otherwise the
// sin and cos halves would mismatch in width.
//
// Example:
//
//	pe := xl.PositionalEncoding(128, 512, backend) // [128, 512]
func PositionalEncoding[B tensor.Backend](seqLen, hiddenSize int, backend B) *tensor.Tensor[float32, B] {
	if seqLen <= 0 {
		panic(fmt.Sprintf("PositionalEncoding: seqLen must be positive, got %d", seqLen))
	}
	if hiddenSize <= 0 || hiddenSize%2 != 0 {
		panic(fmt.Sprintf("PositionalEncoding: hiddenSize must be positive and even, got %d", hiddenSize))
	}

	half := hiddenSize / 2
	angles := make([]float32, seqLen*half)
	for i := 0; i < seqLen; i++ {
		distance := float64(seqLen - 1 - i)
		for j := 0; j < half; j++ {
			invFreq := math.Pow(10000.0, -float64(2*j)/float64(hiddenSize))
			angles[i*half+j] = float32(distance * invFreq)
		}
	}

	angleTensor, err := tensor.FromSlice(angles, tensor.Shape{seqLen, half}, backend)
	if err != nil {
		panic(fmt.Sprintf("PositionalEncoding: %v", err))
	}

	return tensor.Cat([]*tensor.Tensor[float32, B]{angleTensor.Sin(), angleTensor.Cos()}, 1)
}
