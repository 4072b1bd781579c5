package exec

import (
	"fmt"

	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
)

// Forward runs the full node list against the supplied inputs (one tensor
// per graph.Graph.Inputs, in order) and returns the tensor at the graph's
// loss output. Every node executes, not just the inference prefix,
// because training needs every intermediate tensor populated for
// Backward to read.
func (m *Model[T]) Forward(inputs ...*tensor.Dense[T]) (*tensor.Dense[T], error) {
	if m.g.LossOut == nil {
		return nil, ErrNoLoss
	}

	if err := m.bindInputs(inputs); err != nil {
		return nil, err
	}

	m.runForward(len(m.dispatch))

	out, err := m.tensors.Get(m.g.LossOut.ID)
	if err != nil {
		return nil, fmt.Errorf("exec: reading loss output: %w", err)
	}

	return out, nil
}

// Inference runs only the nodes 0..NInferenceNodes-1 (the inference
// prefix computed by graph.Graph.Compile) and returns the tensors at the
// graph's declared outputs, in order.
func (m *Model[T]) Inference(inputs ...*tensor.Dense[T]) ([]*tensor.Dense[T], error) {
	if m.g.NInferenceNodes < 0 {
		return nil, ErrInferenceUndefined
	}

	if err := m.bindInputs(inputs); err != nil {
		return nil, err
	}

	m.runForward(m.g.NInferenceNodes)

	results := make([]*tensor.Dense[T], len(m.g.Outputs))

	for i, out := range m.g.Outputs {
		t, err := m.tensors.Get(out.ID)
		if err != nil {
			return nil, fmt.Errorf("exec: reading output %d: %w", i, err)
		}

		results[i] = t
	}

	return results, nil
}

// Backward seeds the GRADS entry at the loss symbol with upperGrad (or a
// tensor of ones matching the loss shape, if upperGrad is nil), then
// dispatches every node in reverse, accumulating each returned slot
// gradient into its input symbol's GRADS entry. Gradients for every
// symbol are reset to zero first, so repeated Backward calls on the same
// Model do not accumulate across calls.
func (m *Model[T]) Backward(upperGrad *tensor.Dense[T]) error {
	if m.g.LossOut == nil {
		return ErrNoLoss
	}

	m.resetGrads()

	lossID := m.g.LossOut.ID

	lossTensor, err := m.tensors.Get(lossID)
	if err != nil {
		return fmt.Errorf("exec: reading loss output: %w", err)
	}

	seed := upperGrad
	if seed == nil {
		seed = onesOf[T](lossTensor.Shape())
	} else if !seed.Shape().Equal(lossTensor.Shape()) {
		return fmt.Errorf("%w: loss shape %s vs upstream gradient shape %s", ErrInputShape, lossTensor.Shape(), seed.Shape())
	} else {
		seed = seed.Clone()
	}

	if err := m.grads.Set(lossID, seed); err != nil {
		return fmt.Errorf("exec: seeding loss gradient: %w", err)
	}

	arith := numeric.OpsFor[T]()

	for i := len(m.dispatch) - 1; i >= 0; i-- {
		thunk := m.dispatch[i]

		// A node whose output never joined backward accumulation has no
		// trainable input either (graph.Op propagates trainability forward
		// from inputs to output), so there is nothing to backprop through.
		if !thunk.outputTrainable {
			continue
		}

		upstream, err := m.grads.Get(thunk.outputID)
		if err != nil {
			return fmt.Errorf("exec: node %d: reading upstream gradient: %w", i, err)
		}

		inputTensors := make([]*tensor.Dense[T], len(thunk.inputIDs))

		for j, id := range thunk.inputIDs {
			t, err := m.tensors.Get(id)
			if err != nil {
				return fmt.Errorf("exec: node %d: reading input %d: %w", i, j, err)
			}

			inputTensors[j] = t
		}

		var nodeErr error

		m.timeBackward(i, func() {
			for slot, id := range thunk.inputIDs {
				if !thunk.inputTrainable[slot] {
					continue
				}

				gradSlot := thunk.op.Backward(slot, upstream, inputTensors, thunk.attrs)

				existing, err := m.grads.Get(id)
				if err != nil {
					nodeErr = fmt.Errorf("exec: node %d: accumulating gradient for slot %d: %w", i, slot, err)

					return
				}

				summed := addElementwise(arith, existing, gradSlot)
				if err := m.grads.Set(id, summed); err != nil {
					nodeErr = fmt.Errorf("exec: node %d: storing accumulated gradient for slot %d: %w", i, slot, err)

					return
				}
			}
		})

		if nodeErr != nil {
			return nodeErr
		}
	}

	return nil
}

// Grad returns the accumulated gradient tensor for a symbol ID (the
// caller typically reads these for every trainable graph.Symbol after
// Backward returns, to drive a parameter update).
func (m *Model[T]) Grad(symbolID int) (*tensor.Dense[T], error) {
	return m.grads.Get(symbolID)
}

func (m *Model[T]) bindInputs(inputs []*tensor.Dense[T]) error {
	if len(inputs) != len(m.g.Inputs) {
		return fmt.Errorf("%w: graph declares %d, got %d", ErrInputArity, len(m.g.Inputs), len(inputs))
	}

	for i, in := range inputs {
		sym := m.g.Inputs[i]
		if !in.Shape().Equal(sym.Shape) {
			return fmt.Errorf("%w: input %d declared %s, got %s", ErrInputShape, i, sym.Shape, in.Shape())
		}

		if err := m.tensors.Set(sym.ID, in.Clone()); err != nil {
			return fmt.Errorf("exec: binding input %d: %w", i, err)
		}
	}

	return nil
}

func (m *Model[T]) runForward(nodeCount int) {
	m.beginForwardSweep()

	for i := 0; i < nodeCount; i++ {
		thunk := m.dispatch[i]

		inputTensors := make([]*tensor.Dense[T], len(thunk.inputIDs))
		for j, id := range thunk.inputIDs {
			inputTensors[j], _ = m.tensors.Get(id)
		}

		out, _ := m.tensors.Get(thunk.outputID)

		m.timeForward(i, func() {
			thunk.op.Forward(out, inputTensors, thunk.attrs)
		})
	}
}

func (m *Model[T]) resetGrads() {
	for _, in := range m.g.Inputs {
		if !in.Trainable {
			continue
		}

		_ = m.grads.Set(in.ID, zeroOf[T](in.Shape))
	}

	for _, entry := range m.g.Params {
		if !entry.Symbol.Trainable {
			continue
		}

		_ = m.grads.Set(entry.Symbol.ID, zeroOf[T](entry.Symbol.Shape))
	}

	for _, thunk := range m.dispatch {
		if !thunk.outputTrainable {
			continue
		}

		existing, err := m.grads.Get(thunk.outputID)
		if err != nil {
			continue
		}

		_ = m.grads.Set(thunk.outputID, zeroOf[T](existing.Shape()))
	}
}

func zeroOf[T numeric.Dtype](s shape.TensorShape) *tensor.Dense[T] {
	t, _ := tensor.New[T](s, nil)

	return t
}

func onesOf[T numeric.Dtype](s shape.TensorShape) *tensor.Dense[T] {
	t, _ := tensor.New[T](s, nil)
	t.Fill(numeric.OpsFor[T]().FromFloat64(1))

	return t
}

func addElementwise[T numeric.Dtype](arith numeric.Arithmetic[T], a, b *tensor.Dense[T]) *tensor.Dense[T] {
	out, _ := tensor.New[T](a.Shape(), nil)
	ad, bd, od := a.Data(), b.Data(), out.Data()

	for i := range ad {
		od[i] = arith.Add(ad[i], bd[i])
	}

	return out
}
