package flow

import (
	"bufio"
	"errors"
	"io"
)

// StreamInflow is an Inflow over an io.Reader such as a net.Conn.
// It buffers with bufio and tracks the first transport error; after one,
// every Get returns it.
//
// Values up to the buffer size are decoded atomically: an underrun leaves
// the stream where it was. A longer value is read directly from the stream,
// and an underrun in it is latched because the bytes are already consumed.
type StreamInflow struct {
	r     *bufio.Reader
	c     io.Closer
	count int64 // total bytes read
	err   error // first error encountered
}

var (
	_ Inflow    = (*StreamInflow)(nil)
	_ io.Reader = (*StreamInflow)(nil)
)

// NewStreamInflowSize creates a new StreamInflow with a specified buffer size.
func NewStreamInflowSize(r io.Reader, size int) (*StreamInflow, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if size < 16 {
		return nil, ErrSizeTooSmall
	}
	c, _ := r.(io.Closer)

	switch reader := r.(type) {
	// Reuse the underlying buffer if it's already a compatible StreamInflow.
	case *StreamInflow:
		if reader.r.Size() >= size {
			return &StreamInflow{r: reader.r, c: reader.c, count: reader.count}, nil
		}

	// prevent unpredictable double-buffering.
	case *bufio.Reader:
		if reader.Size() >= size {
			return &StreamInflow{r: reader}, nil
		}
		return nil, ErrAlreadyBuffered
	}

	return &StreamInflow{r: bufio.NewReaderSize(r, size), c: c}, nil
}

// NewStreamInflow creates a new StreamInflow with a default buffer size.
func NewStreamInflow(r io.Reader) (*StreamInflow, error) {
	return NewStreamInflowSize(r, BUFFER_SIZE)
}

// setError records the first non-nil error.
func (r *StreamInflow) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *StreamInflow) peek(n int) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, err := r.r.Peek(n)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		r.setError(err)
		return nil, err
	}
	return p, nil
}

func (r *StreamInflow) take(n int) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if n <= r.r.Size() {
		p, err := r.r.Peek(n)
		if len(p) < n {
			if err != nil && err != io.EOF {
				r.setError(err)
				return nil, err
			}
			return nil, underrun(n, len(p))
		}
		m, _ := r.r.Discard(n)
		r.count += int64(m)
		return p, nil
	}

	buf := make([]byte, n)
	m, err := io.ReadFull(r.r, buf)
	r.count += int64(m)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = underrun(n, m)
		}
		r.setError(err)
		return nil, err
	}
	return buf, nil
}

func (r *StreamInflow) GetByte() (byte, error)     { return getByte(r) }
func (r *StreamInflow) GetUInt8() (uint8, error)   { return getByte(r) }
func (r *StreamInflow) GetBoolean() (bool, error)  { return getBoolean(r) }
func (r *StreamInflow) GetUInt() (uint32, error)   { return getUInt(r) }
func (r *StreamInflow) GetString() (string, error) { return getString(r) }

func (r *StreamInflow) GetByteArray(length int) ([]byte, error) {
	return getByteArray(r, length)
}

func (r *StreamInflow) GetInt8() (int8, error) {
	b, err := getByte(r)
	return int8(b), err
}

func (r *StreamInflow) GetFlagsBlock() ([8]bool, error) {
	b, err := getByte(r)
	if err != nil {
		return [8]bool{}, err
	}
	return UnpackFlags(b), nil
}

func (r *StreamInflow) GetUInt16() (uint16, error)   { return getFixed(r, 2, LE.Uint16) }
func (r *StreamInflow) GetInt16() (int16, error)     { return getFixed(r, 2, beInt16) }
func (r *StreamInflow) GetUInt31() (uint32, error)   { return getFixed(r, 4, beUInt31) }
func (r *StreamInflow) GetUInt32() (uint32, error)   { return getFixed(r, 4, BE.Uint32) }
func (r *StreamInflow) GetInt32() (int32, error)     { return getFixed(r, 4, beInt32) }
func (r *StreamInflow) GetInt64() (int64, error)     { return getFixed(r, 8, beInt64) }
func (r *StreamInflow) GetFloat32() (float32, error) { return getFixed(r, 4, beFloat32) }
func (r *StreamInflow) GetFloat64() (float64, error) { return getFixed(r, 8, beFloat64) }

func (r *StreamInflow) GetInt32Array() ([]int32, error)     { return getArray(r, 4, beInt32) }
func (r *StreamInflow) GetUInt32Array() ([]uint32, error)   { return getArray(r, 4, BE.Uint32) }
func (r *StreamInflow) GetInt64Array() ([]int64, error)     { return getArray(r, 8, beInt64) }
func (r *StreamInflow) GetFloat32Array() ([]float32, error) { return getArray(r, 4, beFloat32) }
func (r *StreamInflow) GetFloat64Array() ([]float64, error) { return getArray(r, 8, beFloat64) }

// Read implements the io.Reader interface.
func (r *StreamInflow) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	if err != io.EOF {
		r.setError(err)
	}
	return n, err
}

// Close closes the underlying reader if it implements io.Closer.
func (r *StreamInflow) Close() error {
	if r.c != nil {
		return r.c.Close()
	}
	return nil
}

// Buffered returns the number of bytes that can be decoded without touching the stream.
func (r *StreamInflow) Buffered() int { return r.r.Buffered() }

func (r *StreamInflow) Size() int    { return r.r.Size() }
func (r *StreamInflow) Count() int64 { return r.count }
func (r *StreamInflow) Err() error   { return r.err }

// Result returns the total bytes read and the latched error.
func (r *StreamInflow) Result() (int64, error) {
	return r.count, r.err
}
