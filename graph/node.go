package graph

import "github.com/nnrt/corograph/attrvec"

// Node is one step of the computation graph: an operator applied to an
// ordered list of input symbols, producing an ordered list of output
// symbols, parameterized by an attribute vector resolved once at
// graph-build time.
type Node struct {
	Op      Operator
	Attrs   attrvec.AttributeVector
	Inputs  []Symbol
	Outputs []Symbol
}
