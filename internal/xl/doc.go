// Package xl provides segment-recurrence primitives for Transformer-XL
// style attention: relative positional encodings, look-ahead masks, the
// relative-position shift, and the sliding-window memory cache.
//
// The primitives are pure functions; the only state is the memory tensor
// the caller threads from one segment to the next. AttentionWeights
// composes them into the relative-attention score path.
package xl
