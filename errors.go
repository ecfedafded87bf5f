package flow

import (
	"errors"
	"io"
)

var (
	// ErrNilIO indicates that NewStreamInflow/NewStreamOutflow was called with a nil io.Reader/io.Writer.
	ErrNilIO = errors.New("flow: NewStreamInflow/NewStreamOutflow called with a nil io.Reader/io.Writer")

	// ErrSizeTooSmall indicates a size conflict with bufio.
	ErrSizeTooSmall = errors.New("flow: NewStreamInflowSize with a size smaller than 16 conflict with bufio")

	// ErrAlreadyBuffered indicates that a stream flow was created over an already-buffered
	// reader/writer that is smaller than requested, which would lead to double-buffering.
	ErrAlreadyBuffered = errors.New("flow: reader or writer is already buffered")

	// ErrUnderrun indicates a read requested more bytes than remain in the backing store.
	// It wraps io.ErrUnexpectedEOF so callers treating the flow as a stream can match either.
	ErrUnderrun = &wrapped{msg: "flow: read past end of buffer", err: io.ErrUnexpectedEOF}

	// ErrLengthOverflow indicates a sequence or string does not fit the 16-bit length prefix.
	ErrLengthOverflow = errors.New("flow: sequence length exceeds length prefix capacity")

	// ErrMalformedUInt indicates an extensible unsigned integer that does not terminate
	// within MaxUIntLen bytes or does not fit in 32 bits.
	ErrMalformedUInt = errors.New("flow: malformed extensible unsigned integer")

	// ErrUInt31Overflow indicates a value with the reserved top bit set was passed to PutUInt31.
	ErrUInt31Overflow = errors.New("flow: value does not fit in 31 bits")

	// ErrFlagsCount indicates PutFlags8 was called with other than exactly 8 booleans.
	ErrFlagsCount = errors.New("flow: flags block requires exactly 8 booleans")

	// ErrInvalidBoolean indicates a byte other than BoolTrue/BoolFalse where a boolean was expected.
	ErrInvalidBoolean = errors.New("flow: invalid boolean byte")

	// ErrNegativeLength indicates GetByteArray was called with a negative length.
	ErrNegativeLength = errors.New("flow: negative length")

	// ErrInvalidSeek indicates a seek was attempted to an invalid position.
	ErrInvalidSeek = errors.New("flow: seek to a invalid position")

	// ErrInvalidWhence indicates that an invalid 'whence' parameter was provided to a Seek operation.
	ErrInvalidWhence = errors.New("flow: unsupported whence")

	// ErrWriteToNil indicates a WriteTo operation was attempted on a nil io.Writer.
	ErrWriteToNil = errors.New("flow: WriteTo called with a nil io.Writer")

	// ErrTrailingData is returned by Unmarshal when non-zero bytes are found
	// after the expected end of the message.
	ErrTrailingData = errors.New("flow: non-zero trailing data found after decoding")
)

// wrapped is a sentinel that also matches an underlying standard error with errors.Is.
type wrapped struct {
	msg string
	err error
}

func (e *wrapped) Error() string { return e.msg }
func (e *wrapped) Unwrap() error { return e.err }
