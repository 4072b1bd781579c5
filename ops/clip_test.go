package ops_test

import (
	"testing"

	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/ops"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
	"github.com/stretchr/testify/require"
)

func TestClipForwardWithExplicitBounds(t *testing.T) {
	t.Parallel()

	op := ops.Clip[float64]()
	attrs, err := attrvec.New("min", attrvec.Float64(0), "max", attrvec.Float64(6))
	require.NoError(t, err)

	in, err := tensor.New[float64](shape.MustNew(4), []float64{-1, 0, 3, 9})
	require.NoError(t, err)

	out, err := tensor.New[float64](in.Shape(), nil)
	require.NoError(t, err)

	op.Forward(out, []*tensor.Dense[float64]{in}, attrs)
	require.Equal(t, []float64{0, 0, 3, 6}, out.Data())
}

func TestClipBackwardZeroesGradientOutsideBounds(t *testing.T) {
	t.Parallel()

	op := ops.Clip[float64]()
	attrs, err := attrvec.New("min", attrvec.Float64(0), "max", attrvec.Float64(6))
	require.NoError(t, err)

	in, err := tensor.New[float64](shape.MustNew(4), []float64{-1, 0, 3, 9})
	require.NoError(t, err)

	ug, err := tensor.New[float64](in.Shape(), []float64{1, 1, 1, 1})
	require.NoError(t, err)

	grad := op.Backward(0, ug, []*tensor.Dense[float64]{in}, attrs)
	require.Equal(t, []float64{0, 1, 1, 0}, grad.Data())
}

func TestClipDefaultsToDtypeFiniteRange(t *testing.T) {
	t.Parallel()

	op := ops.Clip[float64]()
	in, err := tensor.New[float64](shape.MustNew(2), []float64{-1e300, 1e300})
	require.NoError(t, err)

	out, err := tensor.New[float64](in.Shape(), nil)
	require.NoError(t, err)

	op.Forward(out, []*tensor.Dense[float64]{in}, attrvec.AttributeVector{})
	require.Equal(t, in.Data(), out.Data())
}
