package exec_test

import (
	"testing"

	"github.com/nnrt/corograph/exec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
	"github.com/stretchr/testify/require"
)

// paramValue builds a model around a single parameter marked as the loss
// output and reads the allocated tensor back through a zero-node Forward.
func paramValue(t *testing.T, init graph.InitSpec) *tensor.Dense[float32] {
	t.Helper()

	g := graph.New()
	p := g.Param(shape.MustNew(3), init, true)
	require.NoError(t, g.Loss(p))
	g.Compile()

	m, err := exec.NewModel[float32](g, false)
	require.NoError(t, err)

	out, err := m.Forward()
	require.NoError(t, err)

	return out
}

// TestNamedInitializerAlgorithmTakesPriorityOverData: when a Named
// init-spec carries both an algorithm name and raw seed bytes, the
// algorithm wins and the bytes are ignored.
func TestNamedInitializerAlgorithmTakesPriorityOverData(t *testing.T) {
	seed, err := tensor.New[float32](shape.MustNew(3), []float32{2, 2, 2})
	require.NoError(t, err)

	out := paramValue(t, graph.Named{Name: "ones", Data: seed.Bytes()})
	require.Equal(t, []float32{1, 1, 1}, out.Data())
}

// TestNamedInitializerFallsBackToData: with no algorithm named, the raw
// bytes populate the parameter directly.
func TestNamedInitializerFallsBackToData(t *testing.T) {
	seed, err := tensor.New[float32](shape.MustNew(3), []float32{2.5, -1, 0})
	require.NoError(t, err)

	out := paramValue(t, graph.Named{Data: seed.Bytes()})
	require.Equal(t, []float32{2.5, -1, 0}, out.Data())
}

// TestNamedInitializerEmptySpecZeroFills: a Named init-spec with neither
// field set degrades to zeros, the same default as an absent init-spec.
func TestNamedInitializerEmptySpecZeroFills(t *testing.T) {
	out := paramValue(t, graph.Named{})
	require.Equal(t, []float32{0, 0, 0}, out.Data())
}

func TestNamedInitializerUnknownNameErrors(t *testing.T) {
	g := graph.New()
	p := g.Param(shape.MustNew(3), graph.Named{Name: "bogus"}, true)
	require.NoError(t, g.Loss(p))
	g.Compile()

	_, err := exec.NewModel[float32](g, false)
	require.ErrorIs(t, err, exec.ErrUnknownInitializer)
}
