package flow

import (
	"bufio"
	"io"
)

// StreamOutflow is an Outflow over an io.Writer such as a net.Conn.
// It buffers with bufio and tracks the first transport error; after one,
// every Put returns it. Validation errors are returned but not latched.
type StreamOutflow struct {
	w     *bufio.Writer
	c     io.Closer
	count int64 // total bytes written
	err   error // first error encountered. Subsequent writes become no-ops.
	depth int
}

var (
	_ Outflow   = (*StreamOutflow)(nil)
	_ io.Writer = (*StreamOutflow)(nil)
)

// NewStreamOutflowSize creates a new StreamOutflow with a specified buffer size.
// It returns an error to prevent double-buffering, a common source of bugs.
func NewStreamOutflowSize(w io.Writer, size int) (*StreamOutflow, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	c, _ := w.(io.Closer)

	switch bw := w.(type) {
	// Reuse the underlying buffer if it's already a compatible StreamOutflow.
	case *StreamOutflow:
		if bw.w.Size() >= size {
			return &StreamOutflow{w: bw.w, c: bw.c, depth: bw.depth + 1}, nil
		}

	// prevent unpredictable double-buffering.
	case *bufio.Writer:
		if bw.Size() >= size {
			return &StreamOutflow{w: bw, depth: 1}, nil
		}
		return nil, ErrAlreadyBuffered
	}

	return &StreamOutflow{w: bufio.NewWriterSize(w, size), c: c}, nil
}

// NewStreamOutflow creates a new StreamOutflow with a default buffer size.
func NewStreamOutflow(w io.Writer) (*StreamOutflow, error) {
	return NewStreamOutflowSize(w, BUFFER_SIZE)
}

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *StreamOutflow) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *StreamOutflow) reserve(n int) []byte {
	if buf := w.w.AvailableBuffer(); cap(buf) >= n {
		return buf[:n]
	}
	return make([]byte, n)
}

func (w *StreamOutflow) commit(p []byte) error {
	if w.err != nil {
		return w.err
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
	return w.err
}

func (w *StreamOutflow) PutByte(b byte) error          { return putBytes(w, []byte{b}) }
func (w *StreamOutflow) PutByteArray(b []byte) error   { return putBytes(w, b) }
func (w *StreamOutflow) PutUInt8(v uint8) error        { return putBytes(w, []byte{v}) }
func (w *StreamOutflow) PutInt8(v int8) error          { return putBytes(w, []byte{byte(v)}) }
func (w *StreamOutflow) PutBoolean(v bool) error       { return putBoolean(w, v) }
func (w *StreamOutflow) PutFlags8(flags []bool) error  { return putFlags8(w, flags) }
func (w *StreamOutflow) PutUInt16(v uint16) error      { return putFixed(w, 2, LE.PutUint16, v) }
func (w *StreamOutflow) PutInt16(v int16) error        { return putFixed(w, 2, bePutInt16, v) }
func (w *StreamOutflow) PutUInt31(v uint32) error      { return putUInt31(w, v) }
func (w *StreamOutflow) PutUInt32(v uint32) error      { return putFixed(w, 4, BE.PutUint32, v) }
func (w *StreamOutflow) PutInt32(v int32) error        { return putFixed(w, 4, bePutInt32, v) }
func (w *StreamOutflow) PutInt64(v int64) error        { return putFixed(w, 8, bePutInt64, v) }
func (w *StreamOutflow) PutFloat32(v float32) error    { return putFixed(w, 4, bePutFloat32, v) }
func (w *StreamOutflow) PutFloat64(v float64) error    { return putFixed(w, 8, bePutFloat64, v) }
func (w *StreamOutflow) PutUInt(v uint32) error        { return putUInt(w, v) }
func (w *StreamOutflow) PutString(s string) error      { return putString(w, s) }
func (w *StreamOutflow) PutInt32Array(a []int32) error { return putArray(w, a, 4, bePutInt32) }
func (w *StreamOutflow) PutInt64Array(a []int64) error { return putArray(w, a, 8, bePutInt64) }

func (w *StreamOutflow) PutUInt32Array(a []uint32) error {
	return putArray(w, a, 4, BE.PutUint32)
}

func (w *StreamOutflow) PutFloat32Array(a []float32) error {
	return putArray(w, a, 4, bePutFloat32)
}

func (w *StreamOutflow) PutFloat64Array(a []float64) error {
	return putArray(w, a, 8, bePutFloat64)
}

// Write implements the io.Writer interface.
func (w *StreamOutflow) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// ReadFrom implements io.ReaderFrom for efficient copying.
func (w *StreamOutflow) ReadFrom(r io.Reader) (int64, error) {
	if r == nil || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.ReadFrom(r)
	w.count += n
	w.setError(err)
	return n, w.err
}

// Close flushes and closes the underlying writer if it implements io.Closer.
func (w *StreamOutflow) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.c != nil {
		return w.c.Close()
	}
	return nil
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *StreamOutflow) Flush() error {
	// To prevent nested outflows from flushing the buffer prematurely.
	// Only the outermost outflow should be responsible for the final flush.
	if w.depth > 0 || w.err != nil {
		return w.err
	}
	err := w.w.Flush()
	w.setError(err)
	return err
}

// Result flushes the buffer and returns the final count and error state.
func (w *StreamOutflow) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

func (w *StreamOutflow) Size() int    { return w.w.Size() }
func (w *StreamOutflow) Count() int64 { return w.count }
func (w *StreamOutflow) Err() error   { return w.err }
