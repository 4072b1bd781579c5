package exec_test

import (
	"testing"

	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/exec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
	"github.com/stretchr/testify/require"
)

func noAttrs(t *testing.T) attrvec.AttributeVector {
	t.Helper()

	av, err := attrvec.New()
	require.NoError(t, err)

	return av
}

// TestReLUChainForwardBackward drives y = RELU(x); L = mean(y) through a
// model. The catalog has no reduction operator, so the mean is computed
// outside the graph: the loss node is RELU itself, and the test supplies
// mean's analytic upstream gradient (1/N per element) as the Backward
// seed.
func TestReLUChainForwardBackward(t *testing.T) {
	g := graph.New()

	x := g.Input(shape.MustNew(3), true)

	relu, err := g.Op(graph.OpReLU, []graph.Symbol{x}, noAttrs(t))
	require.NoError(t, err)
	require.True(t, relu.Trainable, "RELU output must inherit trainability from its input")

	require.NoError(t, g.Loss(relu))
	g.Compile()

	m, err := exec.NewModel[float32](g, false)
	require.NoError(t, err)

	xt, err := tensor.New[float32](shape.MustNew(3), []float32{-2, 1, 3})
	require.NoError(t, err)

	loss, err := m.Forward(xt)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 1, 3}, loss.Data())

	mean := float32(0)
	for _, v := range loss.Data() {
		mean += v
	}

	mean /= float32(len(loss.Data()))
	require.InDelta(t, 4.0/3.0, mean, 1e-6)

	upstream, err := tensor.New[float32](shape.MustNew(3), []float32{1.0 / 3, 1.0 / 3, 1.0 / 3})
	require.NoError(t, err)

	require.NoError(t, m.Backward(upstream))

	grad, err := m.Grad(x.ID)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 1.0 / 3, 1.0 / 3}, toFloat64Slice(grad.Data()), 1e-6)
}

func toFloat64Slice(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}

	return out
}

// TestBackwardDefaultsToOnes checks the loss-gradient seeding rule:
// Backward(nil) fills the loss gradient with 1.
func TestBackwardDefaultsToOnes(t *testing.T) {
	g := graph.New()

	x := g.Input(shape.MustNew(4), true)

	relu, err := g.Op(graph.OpReLU, []graph.Symbol{x}, noAttrs(t))
	require.NoError(t, err)
	require.NoError(t, g.Loss(relu))
	g.Compile()

	m, err := exec.NewModel[float32](g, false)
	require.NoError(t, err)

	xt, err := tensor.New[float32](shape.MustNew(4), []float32{-1, 0, 2, 3.5})
	require.NoError(t, err)

	loss, err := m.Forward(xt)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 2, 3.5}, loss.Data())

	require.NoError(t, m.Backward(nil))

	grad, err := m.Grad(x.ID)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 1, 1}, grad.Data())
}

// TestNonTrainableSymbolHasNoGrad: after Backward, GRADS has no entry
// for a non-trainable symbol.
func TestNonTrainableSymbolHasNoGrad(t *testing.T) {
	g := graph.New()

	x := g.Input(shape.MustNew(2), false)

	relu, err := g.Op(graph.OpReLU, []graph.Symbol{x}, noAttrs(t))
	require.NoError(t, err)
	require.False(t, relu.Trainable)

	require.NoError(t, g.Loss(relu))
	g.Compile()

	m, err := exec.NewModel[float32](g, false)
	require.NoError(t, err)

	xt, err := tensor.New[float32](shape.MustNew(2), []float32{-1, 2})
	require.NoError(t, err)

	_, err = m.Forward(xt)
	require.NoError(t, err)

	err = m.Backward(nil)
	require.Error(t, err, "seeding the loss gradient must fail: the loss symbol is never trainable here")

	_, err = m.Grad(x.ID)
	require.Error(t, err, "GRADS must have no entry for a non-trainable symbol")
}

// TestInferenceRunsOnlyInferencePrefix: Inference executes exactly
// NInferenceNodes nodes and ignores everything after the last node that
// feeds a declared output.
func TestInferenceRunsOnlyInferencePrefix(t *testing.T) {
	g := graph.New()

	x := g.Input(shape.MustNew(2), false)

	relu, err := g.Op(graph.OpReLU, []graph.Symbol{x}, noAttrs(t))
	require.NoError(t, err)
	require.NoError(t, g.Out(relu))

	// A further node after the declared output must not affect Inference.
	_, err = g.Op(graph.OpSigmoid, []graph.Symbol{relu}, noAttrs(t))
	require.NoError(t, err)

	g.Compile()
	require.Equal(t, 1, g.NInferenceNodes)

	m, err := exec.NewModel[float32](g, true)
	require.NoError(t, err)

	xt, err := tensor.New[float32](shape.MustNew(2), []float32{-1, 3})
	require.NoError(t, err)

	outs, err := m.Inference(xt)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	require.Equal(t, []float32{0, 3}, outs[0].Data())
}

// TestForwardDeterministic: running forward twice with the same inputs
// yields bit-identical output.
func TestForwardDeterministic(t *testing.T) {
	g := graph.New()

	x := g.Input(shape.MustNew(3), false)

	tanh, err := g.Op(graph.OpTanh, []graph.Symbol{x}, noAttrs(t))
	require.NoError(t, err)
	require.NoError(t, g.Loss(tanh))
	g.Compile()

	m, err := exec.NewModel[float32](g, false)
	require.NoError(t, err)

	xt, err := tensor.New[float32](shape.MustNew(3), []float32{-1, 0.5, 2})
	require.NoError(t, err)

	first, err := m.Forward(xt)
	require.NoError(t, err)

	firstData := append([]float32(nil), first.Data()...)

	xt2, err := tensor.New[float32](shape.MustNew(3), []float32{-1, 0.5, 2})
	require.NoError(t, err)

	second, err := m.Forward(xt2)
	require.NoError(t, err)

	require.Equal(t, firstData, second.Data())
}

// TestMaxPool2DThroughModel drives a single pooling node end to end
// through the executor rather than the kernel directly.
func TestMaxPool2DThroughModel(t *testing.T) {
	g := graph.New()

	x := g.Input(shape.MustNew(1, 1, 2, 2), true)

	attrs, err := attrvec.New(
		"kernel_size", attrvec.IntPair(2, 2),
		"stride", attrvec.IntPair(1, 1),
		"padding", attrvec.IntPair(0, 0),
		"dilation", attrvec.IntPair(1, 1),
	)
	require.NoError(t, err)

	pool, err := g.Op(graph.OpMaxPool2D, []graph.Symbol{x}, attrs)
	require.NoError(t, err)
	require.NoError(t, g.Loss(pool))
	g.Compile()

	m, err := exec.NewModel[float32](g, false)
	require.NoError(t, err)

	xt, err := tensor.New[float32](shape.MustNew(1, 1, 2, 2), []float32{1, 2, 3, 4})
	require.NoError(t, err)

	loss, err := m.Forward(xt)
	require.NoError(t, err)
	require.Equal(t, []float32{4}, loss.Data())

	require.NoError(t, m.Backward(nil))

	grad, err := m.Grad(x.ID)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 0, 1}, grad.Data())
}

// TestSqueezeUnsqueezeRoundTrip chains squeeze(dims=(0,2)) and
// unsqueeze(dims=(0,2)) and checks the result reproduces the input's
// shape and bytes exactly, both forward and through the gradient path.
func TestSqueezeUnsqueezeRoundTrip(t *testing.T) {
	g := graph.New()

	x := g.Input(shape.MustNew(1, 3, 1, 4), true)

	squeezeAttrs, err := attrvec.New("dims", attrvec.IntList([]int{0, 2}))
	require.NoError(t, err)

	squeezed, err := g.Op(graph.OpSqueeze, []graph.Symbol{x}, squeezeAttrs)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, squeezed.Shape.Extents())

	unsqueezeAttrs, err := attrvec.New("dims", attrvec.IntList([]int{0, 2}))
	require.NoError(t, err)

	restored, err := g.Op(graph.OpUnsqueeze, []graph.Symbol{squeezed}, unsqueezeAttrs)
	require.NoError(t, err)
	require.True(t, restored.Shape.Equal(x.Shape))

	require.NoError(t, g.Loss(restored))
	g.Compile()

	m, err := exec.NewModel[float32](g, false)
	require.NoError(t, err)

	data := make([]float32, 12)
	for i := range data {
		data[i] = float32(i) + 0.5
	}

	xt, err := tensor.New[float32](shape.MustNew(1, 3, 1, 4), data)
	require.NoError(t, err)

	loss, err := m.Forward(xt)
	require.NoError(t, err)
	require.Equal(t, data, loss.Data())

	require.NoError(t, m.Backward(nil))

	grad, err := m.Grad(x.ID)
	require.NoError(t, err)
	require.True(t, grad.Shape().Equal(x.Shape))

	for _, v := range grad.Data() {
		require.Equal(t, float32(1), v)
	}
}

// TestNewModelRejectsUncompiledGraph: a graph that never had Compile
// called is a construction error.
func TestNewModelRejectsUncompiledGraph(t *testing.T) {
	g := graph.New()
	g.Input(shape.MustNew(1), false)

	_, err := exec.NewModel[float32](g, false)
	require.ErrorIs(t, err, exec.ErrNotCompiled)
}
