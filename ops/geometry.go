package ops

// convOutputExtent mirrors graph.convOutputExtent: one spatial output
// extent for a sliding-window operator given the input extent, kernel
// size, padding, stride, and dilation along that axis. Unlike graph's
// version it assumes graph.ResultShape already validated the attributes,
// so it never returns an error. The MAXPOOL2D and CONV2D kernels do not
// call it: they read the output extents from the output (or upstream
// gradient) tensor's shape.
func convOutputExtent(inExtent, kernel, padding, stride, dilation int) int {
	effectiveKernel := dilation*(kernel-1) + 1
	numerator := inExtent + 2*padding - effectiveKernel

	return numerator/stride + 1
}

// windowGeometry resolves kernel_size/padding/stride/dilation attributes
// with the same defaults graph.geometryAttrs uses (stride defaults to
// kernel_size, dilation defaults to (1,1), padding defaults to (0,0)).
func windowGeometry(attrs geometryLookup) (kernel, padding, stride, dilation [2]int) {
	kernel, _ = attrs.IntPair("kernel_size")

	if p, ok := attrs.IntPair("padding"); ok {
		padding = p
	}

	if s, ok := attrs.IntPair("stride"); ok {
		stride = s
	} else {
		stride = kernel
	}

	if d, ok := attrs.IntPair("dilation"); ok {
		dilation = d
	} else {
		dilation = [2]int{1, 1}
	}

	return kernel, padding, stride, dilation
}

// geometryLookup is the subset of attrvec.AttributeVector windowGeometry
// needs.
type geometryLookup interface {
	IntPair(name string) ([2]int, bool)
}
