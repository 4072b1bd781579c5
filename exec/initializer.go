package exec

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
)

// namedInitializer fills a freshly allocated parameter tensor according to
// a graph.Named init-spec. The named algorithm takes priority: when
// spec.Name selects one, spec.Data is ignored. Data is consumed only as a
// fallback, when spec.Name is empty — it is then taken as raw bytes in
// tensor.Dense.Bytes layout and decoded directly.
func namedInitializer[T numeric.Dtype](spec graph.Named, s shape.TensorShape) (*tensor.Dense[T], error) {
	if spec.Name == "" {
		if len(spec.Data) > 0 {
			return tensor.FromBytes[T](s, spec.Data)
		}

		return tensor.New[T](s, nil)
	}

	arith := numeric.OpsFor[T]()
	fanIn, fanOut := fanInOut(s)

	t, err := tensor.New[T](s, nil)
	if err != nil {
		return nil, err
	}

	data := t.Data()

	switch spec.Name {
	case "zeros":
		// t is already zero-initialized.
	case "ones":
		one := arith.FromFloat64(1)
		for i := range data {
			data[i] = one
		}
	case "xavier":
		limit := math.Sqrt(6.0 / (float64(fanIn) + float64(fanOut)))
		for i := range data {
			// #nosec G404 -- math/rand is acceptable for weight initialization.
			v := (rand.Float64()*2 - 1) * limit
			data[i] = arith.FromFloat64(v)
		}
	case "he":
		stddev := math.Sqrt(2.0 / float64(fanIn))
		for i := range data {
			// #nosec G404 -- math/rand is acceptable for weight initialization.
			v := rand.NormFloat64() * stddev
			data[i] = arith.FromFloat64(v)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInitializer, spec.Name)
	}

	return t, nil
}

// fanInOut derives conventional fan-in/fan-out counts from an arbitrary
// TensorShape: the first extent is fan-in, the last is fan-out, matching
// the (inputSize, outputSize) convention of 2-D weight matrices and
// degrading gracefully for other ranks.
func fanInOut(s shape.TensorShape) (fanIn, fanOut int) {
	if s.Rank() == 0 {
		return 1, 1
	}

	fanIn = s.Extent(0)
	fanOut = s.Extent(s.Rank() - 1)

	return fanIn, fanOut
}
