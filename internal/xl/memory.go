package xl

import (
	"fmt"

	"github.com/relmem-ml/relmem/internal/autodiff"
	"github.com/relmem-ml/relmem/internal/tensor"
)

// CacheMemory produces the memory for the next segment: the last mSeqLen
// time steps of concat(memory, embeddings) along the time dimension.
//
// memory is [batch, mOld, hidden] and embeddings [batch, qLen, hidden];
// the result is [batch, mSeqLen, hidden]. mSeqLen <= 0 keeps the current
// memory length; an mSeqLen larger than the concatenated length clips to
// it, returning the full concatenation.
//
// The update is recurrence bookkeeping, not part of the model: it is kept
// off any gradient tape and the result is detached, so a backward pass
// never propagates into memory or embeddings through this path. The caller
// threads the returned tensor into the next segment's forward pass.
//
// Example:
//
//	memory := tensor.Zeros[float32](tensor.Shape{batch, mLen, hidden}, backend)
//	for _, segment := range segments {
//	    embeddings := embed(segment)
//	    // ... attention over [memory | embeddings] ...
//	    memory = xl.CacheMemory(memory, embeddings, mLen)
//	}
func CacheMemory[B tensor.Backend](memory, embeddings *tensor.Tensor[float32, B], mSeqLen int) *tensor.Tensor[float32, B] {
	if len(memory.Shape()) != 3 {
		panic(fmt.Sprintf("CacheMemory: memory must be 3D [batch, mSeqLen, hidden], got %v", memory.Shape()))
	}
	if len(embeddings.Shape()) != 3 {
		panic(fmt.Sprintf("CacheMemory: embeddings must be 3D [batch, qSeqLen, hidden], got %v", embeddings.Shape()))
	}

	if mSeqLen <= 0 {
		mSeqLen = memory.Shape()[1]
	}

	// Stop-gradient: pause the tape (if any) so the cat/narrow below are
	// never part of a backward pass.
	if rec, ok := any(memory.Backend()).(autodiff.BackwardCapable); ok && rec.GetTape().IsRecording() {
		rec.GetTape().StopRecording()
		defer rec.GetTape().StartRecording()
	}

	joined := tensor.Cat([]*tensor.Tensor[float32, B]{memory, embeddings}, 1)
	total := joined.Shape()[1]
	if mSeqLen > total {
		mSeqLen = total
	}

	return joined.Narrow(1, total-mSeqLen, mSeqLen).Detach()
}
