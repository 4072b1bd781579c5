package shape

import "fmt"

// Broadcast computes the NumPy-style broadcast result of two shapes,
// reporting whether each input needs broadcasting to reach it. Trailing
// axes are compared pairwise; an extent of 1 stretches to match.
func Broadcast(a, b TensorShape) (result TensorShape, broadcastA, broadcastB bool, err error) {
	rankA, rankB := a.Rank(), b.Rank()

	maxRank := rankA
	if rankB > maxRank {
		maxRank = rankB
	}

	out := make([]int, maxRank)

	for i := 1; i <= maxRank; i++ {
		dimA := 1
		if i <= rankA {
			dimA = a.Extent(rankA - i)
		}

		dimB := 1
		if i <= rankB {
			dimB = b.Extent(rankB - i)
		}

		if dimA != dimB && dimA != 1 && dimB != 1 {
			return TensorShape{}, false, false, fmt.Errorf("shape: %s and %s are not broadcast compatible at trailing axis %d (%d vs %d)", a, b, i-1, dimA, dimB)
		}

		if dimA > dimB {
			out[maxRank-i] = dimA
		} else {
			out[maxRank-i] = dimB
		}
	}

	result, err = New(out...)
	if err != nil {
		return TensorShape{}, false, false, err
	}

	return result, !a.Equal(result), !b.Equal(result), nil
}

// BroadcastOffset maps a flat row-major index in a tensor of outputShape to
// the corresponding flat offset in a tensor of the (smaller or equal) input
// shape, collapsing any axis where the input has extent 1.
func BroadcastOffset(flatIndex int, input, output TensorShape) int {
	outRank := output.Rank()
	inRank := input.Rank()
	offset := 0

	for i := 0; i < outRank; i++ {
		coord := (flatIndex / output.Stride(i)) % output.Extent(i)

		inAxis := inRank - (outRank - i)
		if inAxis < 0 {
			continue
		}

		if input.Extent(inAxis) != 1 {
			offset += coord * input.Stride(inAxis)
		}
	}

	return offset
}
