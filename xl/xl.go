// Copyright 2026 The Relmem Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package xl provides segment-recurrence primitives for Transformer-XL
// style attention models: relative positional encodings, look-ahead masks,
// the relative-position shift, and the sliding-window memory cache.
//
// The primitives are stateless; a model's forward pass calls them once per
// segment and threads the memory returned by CacheMemory into the next
// segment:
//
//	backend := cpu.New()
//	memory := tensor.Zeros[float32](tensor.Shape{batch, mLen, hidden}, backend)
//
//	for _, segment := range segments {
//	    embeddings := embed(segment)                       // [batch, qLen, hidden]
//	    pe := xl.PositionalEncoding(mLen+qLen, hidden, backend)
//	    mask := xl.LookAheadMask(qLen, mLen, backend)
//	    // ... relative attention over [memory | embeddings] ...
//	    memory = xl.CacheMemory(memory, embeddings, mLen)
//	}
package xl

import (
	"github.com/relmem-ml/relmem/internal/tensor"
	"github.com/relmem-ml/relmem/internal/xl"
)

// PositionalEncoding computes the relative sinusoidal positional encoding:
// the column-wise concat [sin | cos] of the outer product of the distances
// seqLen-1..0 and the inverse frequencies 10000^(-2j/hiddenSize), shape
// [seqLen, hiddenSize]. hiddenSize must be even.
func PositionalEncoding[B tensor.Backend](seqLen, hiddenSize int, backend B) *tensor.Tensor[float32, B] {
	return xl.PositionalEncoding(seqLen, hiddenSize, backend)
}

// LookAheadMask builds the causal mask [1, 1, qSeqLen, mSeqLen+qSeqLen]
// with 1 marking forbidden (future query) positions and 0 everywhere else.
func LookAheadMask[B tensor.Backend](qSeqLen, mSeqLen int, backend B) *tensor.Tensor[float32, B] {
	return xl.LookAheadMask(qSeqLen, mSeqLen, backend)
}

// RelShift re-aligns a [batch, heads, qLen, rLen] relative-position score
// tensor via the exact pad/reshape/slice/reshape buffer arithmetic.
func RelShift[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return xl.RelShift(x)
}

// CacheMemory returns the last mSeqLen time steps of
// concat(memory, embeddings) along the time dimension, detached from any
// gradient tape. mSeqLen <= 0 keeps the current memory length; a value
// larger than the concatenated length clips to it.
func CacheMemory[B tensor.Backend](memory, embeddings *tensor.Tensor[float32, B], mSeqLen int) *tensor.Tensor[float32, B] {
	return xl.CacheMemory(memory, embeddings, mSeqLen)
}

// AttentionWeights combines content scores, shifted relative-position
// scores, scaling and an optional look-ahead mask into softmax weights.
func AttentionWeights[B tensor.Backend](
	content, position *tensor.Tensor[float32, B],
	mask *tensor.Tensor[float32, B],
	scale float32,
) *tensor.Tensor[float32, B] {
	return xl.AttentionWeights(content, position, mask, scale)
}
