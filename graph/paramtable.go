package graph

// InitSpec describes how a parameter's arena tensor should be populated at
// Model construction: explicit data, a named initializer with optional
// raw data, or absent (defaults to zeros). Modeled as an interface with
// three concrete implementations rather than a single struct with unused
// fields.
type InitSpec interface {
	isInitSpec()
}

// Zeros is the absent init-spec: the parameter's arena tensor is left
// zero-initialized.
type Zeros struct{}

func (Zeros) isInitSpec() {}

// Named selects a registered initializer (e.g. "xavier", "ones") by name.
// The initializer never reads Data: when Name is set, Data is ignored;
// when Name is empty, Data is decoded as raw bytes in tensor.Dense.Bytes
// layout, and an empty Data yields zeros.
type Named struct {
	Name string
	Data []byte
}

func (Named) isInitSpec() {}

// ExplicitData supplies the parameter's tensor contents directly as raw
// bytes, matching the layout tensor.Dense.Bytes/FromBytes use. This is the
// init-spec paramstore loaders produce.
type ExplicitData struct {
	Raw []byte
}

func (ExplicitData) isInitSpec() {}

// ParamEntry is one row of the ParamTable: a parameter symbol paired with
// its initialization record.
type ParamEntry struct {
	Symbol Symbol
	Init   InitSpec
}

// ParamTable is the ordered list of parameter symbols and their init
// specs, in the order param() was called during graph construction.
type ParamTable []ParamEntry
