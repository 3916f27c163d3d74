package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations; the set of
// operations is the closure of what the xl domain layer needs (positional
// encodings, attention masks, relative shifts, memory caching and the
// attention-weight path they feed).
type Backend interface {
	// Element-wise binary operations (with NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Scalar operations
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise)
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor

	// BatchMatMul performs batched matrix multiplication for 3D/4D tensors.
	// For 3D: [B, M, K] @ [B, K, N] -> [B, M, N]
	// For 4D: [B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
	BatchMatMul(a, b *RawTensor) *RawTensor

	// Softmax normalizes along the last dimension (dim must be -1 or ndim-1).
	Softmax(x *RawTensor, dim int) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Manipulation operations
	Cat(tensors []*RawTensor, dim int) *RawTensor         // concatenate along dimension
	Narrow(x *RawTensor, dim, start, length int) *RawTensor // slice [start, start+length) along dimension
	Pad(x *RawTensor, dim, before, after int) *RawTensor  // zero-pad along dimension

	// Metadata
	Name() string
	Device() Device
}
