package graph

import "fmt"

// convOutputExtent computes one spatial output extent for a sliding-window
// operator (MAXPOOL2D, CONV2D) given the matching input extent, kernel
// size, padding, stride, and dilation along that axis. Both operators'
// result-shape computations share it.
func convOutputExtent(inExtent, kernel, padding, stride, dilation int) (int, error) {
	if stride <= 0 {
		return 0, fmt.Errorf("graph: stride must be positive, got %d", stride)
	}

	if dilation <= 0 {
		return 0, fmt.Errorf("graph: dilation must be positive, got %d", dilation)
	}

	effectiveKernel := dilation*(kernel-1) + 1
	numerator := inExtent + 2*padding - effectiveKernel

	if numerator < 0 {
		return 0, fmt.Errorf("graph: kernel %d with padding %d and dilation %d exceeds input extent %d", kernel, padding, dilation, inExtent)
	}

	return numerator/stride + 1, nil
}
