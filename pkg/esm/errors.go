package esm

import "errors"

// ESM format errors.
var (
	// ErrTruncated indicates a read would run past the end of the data or the
	// declared bounds of the current chunk.
	ErrTruncated = errors.New("truncated ESM data")

	// ErrBadHeader indicates the file does not start with a TES3 header record.
	ErrBadHeader = errors.New("invalid ESM header: expected 'TES3'")

	// ErrSubrecordOverrun indicates a subrecord's declared size extends past
	// the end of its enclosing record. The file is malformed; continuing
	// would desynchronize the stream.
	ErrSubrecordOverrun = errors.New("subrecord overruns record boundary")

	// ErrBadTag indicates a chunk tag contained non-printable bytes where a
	// four-character ASCII identifier was required.
	ErrBadTag = errors.New("malformed chunk tag")
)
