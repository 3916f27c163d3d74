// Package main provides the Relmem CLI.
package main

import (
	"fmt"
	"os"

	"github.com/relmem-ml/relmem/internal/backend/cpu"
	"github.com/relmem-ml/relmem/internal/tensor"
	"github.com/relmem-ml/relmem/internal/xl"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Relmem %s\n", version)
			return
		case "demo":
			runDemo()
			return
		}
	}

	fmt.Println("Relmem - Segment-Recurrence Primitives for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Run a two-segment memory recurrence demo")
}

// runDemo walks one batch through two segments, printing the mask and the
// memory window after each step.
func runDemo() {
	const (
		batch  = 1
		qLen   = 2
		mLen   = 3
		hidden = 4
	)

	backend := cpu.New()

	pe := xl.PositionalEncoding(mLen+qLen, hidden, backend)
	fmt.Printf("Positional encoding %v:\n", pe.Shape())
	printRows(pe.Data(), hidden)

	mask := xl.LookAheadMask(qLen, mLen, backend)
	fmt.Printf("Look-ahead mask %v:\n", mask.Shape())
	printRows(mask.Data(), mLen+qLen)

	memory := tensor.Zeros[float32](tensor.Shape{batch, mLen, hidden}, backend)
	for step := 1; step <= 2; step++ {
		embeddings := tensor.Full[float32](tensor.Shape{batch, qLen, hidden}, float32(step), backend)
		memory = xl.CacheMemory(memory, embeddings, mLen)
		fmt.Printf("Memory after segment %d %v:\n", step, memory.Shape())
		printRows(memory.Data(), hidden)
	}
}

func printRows(data []float32, width int) {
	for i := 0; i < len(data); i += width {
		fmt.Printf("  %6.3f\n", data[i:i+width])
	}
	fmt.Println()
}
