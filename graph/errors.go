package graph

import "errors"

// ErrDuplicateLoss is returned by Loss when a loss symbol has already been
// registered for this graph; a graph has at most one.
var ErrDuplicateLoss = errors.New("graph: loss output already registered")

// ErrUnknownSymbol is returned when a Symbol passed to Out, Loss, or Op as
// an input has an ID this graph has not assigned yet (ID >= the graph's
// symbol count). A Symbol from another graph whose ID is in range is not
// detected.
var ErrUnknownSymbol = errors.New("graph: symbol does not belong to this graph")

// ErrShapeMismatch is returned when an operator's declared result shape
// disagrees with a shape supplied at the call site. Shape errors surface
// at graph-build time, never during a sweep.
var ErrShapeMismatch = errors.New("graph: shape mismatch on op insertion")
