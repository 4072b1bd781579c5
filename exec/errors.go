package exec

import "errors"

// ErrNotCompiled is returned by NewModel when passed a graph that has not
// had Compile called on it.
var ErrNotCompiled = errors.New("exec: graph is not compiled")

// ErrInputArity is returned by Forward/Inference when the number of
// supplied tensors does not match the graph's declared inputs.
var ErrInputArity = errors.New("exec: wrong number of inputs")

// ErrInputShape is returned when a supplied input tensor's shape does not
// match its declared graph.Symbol shape.
var ErrInputShape = errors.New("exec: input shape does not match declared symbol shape")

// ErrNoLoss is returned by Forward/Backward when the graph has no
// registered loss output.
var ErrNoLoss = errors.New("exec: graph has no loss output")

// ErrInferenceUndefined is returned by Inference when the graph's
// NInferenceNodes is undefined: no declared output symbol is produced by
// any node.
var ErrInferenceUndefined = errors.New("exec: inference is undefined for this graph")

// ErrUnknownOperator is returned when a node's operator kind has no
// registered kernel in the ops catalog.
var ErrUnknownOperator = errors.New("exec: no kernel registered for operator kind")

// ErrUnknownInitializer is returned when a graph.Named init-spec names an
// initializer not present in the named-initializer registry.
var ErrUnknownInitializer = errors.New("exec: unknown named initializer")
