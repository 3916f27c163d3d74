package xl

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/tensor"
)

// maskPenalty is subtracted from masked positions before softmax, driving
// their weights to zero.
const maskPenalty = float32(1e30)

// AttentionWeights combines the pieces of a relative-attention score into
// normalized weights:
//
//	softmax((content + RelShift(position)) * scale - mask * 1e30, dim=-1)
//
// content holds the content-based scores [batch, heads, qLen, kLen] and
// position the relative-position scores [batch, heads, qLen, kLen] prior to
// shifting. mask is a {0,1} look-ahead mask [1, 1, qLen, kLen] broadcast
// over batch and heads; nil skips masking. scale is typically
// 1/sqrt(headDim).
func AttentionWeights[B tensor.Backend](
	content, position *tensor.Tensor[float32, B],
	mask *tensor.Tensor[float32, B],
	scale float32,
) *tensor.Tensor[float32, B] {
	if !content.Shape().Equal(position.Shape()) {
		panic(fmt.Sprintf("AttentionWeights: content shape %v != position shape %v",
			content.Shape(), position.Shape()))
	}

	scores := content.Add(RelShift(position)).MulScalar(scale)
	if mask != nil {
		scores = scores.Add(mask.MulScalar(-maskPenalty))
	}

	return scores.Softmax(-1)
}
