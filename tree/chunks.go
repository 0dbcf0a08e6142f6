package tree

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Chunk byte-size bounds and the base of the size heuristic.
const (
	chunkBase = 256 * 1024
	chunkMin  = 128 * 1024
	chunkMax  = 64 * 1024 * 1024
)

// GuessChunks proposes a chunk shape for an array of the given shape and
// element byte size. The target chunk size scales with the total dataset
// size, clamped between 128 KiB and 64 MiB; dimensions are halved
// round-robin until the chunk fits the target.
func GuessChunks(shape []int, typesize int) []int {
	ndims := len(shape)
	if ndims == 0 {
		return nil
	}
	if typesize <= 0 {
		typesize = 1
	}
	// chunks must be non-zero along every dimension
	chunks := make([]float64, ndims)
	for i, s := range shape {
		if s < 1 {
			s = 1
		}
		chunks[i] = float64(s)
	}

	dsetBytes := floats.Prod(chunks) * float64(typesize)
	target := chunkBase * math.Pow(2, math.Log10(dsetBytes/(1024.0*1024.0)))
	if target > chunkMax {
		target = chunkMax
	} else if target < chunkMin {
		target = chunkMin
	}

	for i := 0; ; i++ {
		chunkBytes := floats.Prod(chunks) * float64(typesize)
		if (chunkBytes < target || math.Abs(chunkBytes-target)/target < 0.5) && chunkBytes < chunkMax {
			break
		}
		if floats.Prod(chunks) == 1 {
			break
		}
		chunks[i%ndims] = math.Ceil(chunks[i%ndims] / 2.0)
	}

	out := make([]int, ndims)
	for i, c := range chunks {
		out[i] = int(c)
	}
	return out
}

// AutoChunks guesses a chunk shape straight from an ArrayLike.
func AutoChunks(a ArrayLike) []int {
	return GuessChunks(a.Shape(), ItemSize(a.DType()))
}
