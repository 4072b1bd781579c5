package paramstore

import "errors"

// ErrUnsupportedDtype is returned by EncodeTensor when T has no ZMF
// wire-format mapping, and by DecodeTensor when a persisted tensor's
// zmf.Tensor_DataType has no decoder for the requested T. The wire
// format covers a subset of dtypes, not every type the engine can be
// instantiated over.
var ErrUnsupportedDtype = errors.New("paramstore: unsupported dtype for ZMF encoding")

// ErrDtypeMismatch is returned by DecodeTensor when the persisted
// tensor's dtype does not match the requested T.
var ErrDtypeMismatch = errors.New("paramstore: persisted tensor dtype does not match requested type")
