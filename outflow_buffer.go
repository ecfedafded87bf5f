package flow

import "io"

// BufferOutflow is an Outflow that writes into a growable byte slice.
// Writing past len(B) grows the slice; writing before it overwrites in place.
// Slices previously obtained from Bytes may be invalidated by any write.
type BufferOutflow struct {
	B []byte // written data, len(B) is the store length
	N int    // current write position
}

var (
	_ Outflow     = (*BufferOutflow)(nil)
	_ io.Writer   = (*BufferOutflow)(nil)
	_ io.WriterTo = (*BufferOutflow)(nil)
)

// NewBufferOutflow creates an empty BufferOutflow with capacity size.
func NewBufferOutflow(size int) *BufferOutflow {
	return &BufferOutflow{B: make([]byte, 0, size)}
}

// grow makes room for n bytes at the cursor.
func (w *BufferOutflow) grow(n int) {
	need := w.N + n
	if need <= len(w.B) {
		return
	}
	if need <= cap(w.B) {
		w.B = w.B[:need]
		return
	}
	newCap := max(cap(w.B)*2, Roundup(need, 64))
	tmp := make([]byte, need, newCap)
	copy(tmp, w.B)
	w.B = tmp
}

func (w *BufferOutflow) reserve(n int) []byte {
	w.grow(n)
	return w.B[w.N : w.N+n]
}

func (w *BufferOutflow) commit(p []byte) error {
	w.N += len(p)
	return nil
}

func (w *BufferOutflow) PutByte(b byte) error          { return putBytes(w, []byte{b}) }
func (w *BufferOutflow) PutByteArray(b []byte) error   { return putBytes(w, b) }
func (w *BufferOutflow) PutUInt8(v uint8) error        { return putBytes(w, []byte{v}) }
func (w *BufferOutflow) PutInt8(v int8) error          { return putBytes(w, []byte{byte(v)}) }
func (w *BufferOutflow) PutBoolean(v bool) error       { return putBoolean(w, v) }
func (w *BufferOutflow) PutFlags8(flags []bool) error  { return putFlags8(w, flags) }
func (w *BufferOutflow) PutUInt16(v uint16) error      { return putFixed(w, 2, LE.PutUint16, v) }
func (w *BufferOutflow) PutInt16(v int16) error        { return putFixed(w, 2, bePutInt16, v) }
func (w *BufferOutflow) PutUInt31(v uint32) error      { return putUInt31(w, v) }
func (w *BufferOutflow) PutUInt32(v uint32) error      { return putFixed(w, 4, BE.PutUint32, v) }
func (w *BufferOutflow) PutInt32(v int32) error        { return putFixed(w, 4, bePutInt32, v) }
func (w *BufferOutflow) PutInt64(v int64) error        { return putFixed(w, 8, bePutInt64, v) }
func (w *BufferOutflow) PutFloat32(v float32) error    { return putFixed(w, 4, bePutFloat32, v) }
func (w *BufferOutflow) PutFloat64(v float64) error    { return putFixed(w, 8, bePutFloat64, v) }
func (w *BufferOutflow) PutUInt(v uint32) error        { return putUInt(w, v) }
func (w *BufferOutflow) PutString(s string) error      { return putString(w, s) }
func (w *BufferOutflow) PutInt32Array(a []int32) error { return putArray(w, a, 4, bePutInt32) }
func (w *BufferOutflow) PutInt64Array(a []int64) error { return putArray(w, a, 8, bePutInt64) }

func (w *BufferOutflow) PutUInt32Array(a []uint32) error {
	return putArray(w, a, 4, BE.PutUint32)
}

func (w *BufferOutflow) PutFloat32Array(a []float32) error {
	return putArray(w, a, 4, bePutFloat32)
}

func (w *BufferOutflow) PutFloat64Array(a []float64) error {
	return putArray(w, a, 8, bePutFloat64)
}

// Write implements the io.Writer interface.
func (w *BufferOutflow) Write(p []byte) (int, error) {
	return len(p), putBytes(w, p)
}

// WriteString implements the io.StringWriter interface for efficiency.
func (w *BufferOutflow) WriteString(s string) (int, error) {
	p := w.reserve(len(s))
	copy(p, s)
	return len(s), w.commit(p)
}

// WriteByte implements the io.ByteWriter interface for efficiency.
func (w *BufferOutflow) WriteByte(c byte) error {
	return w.PutByte(c)
}

// WriteTo writes the whole store to dst. The cursor is not moved.
func (w *BufferOutflow) WriteTo(dst io.Writer) (int64, error) {
	if dst == nil {
		return 0, ErrWriteToNil
	}
	n, err := dst.Write(w.B)
	if err == nil && n < len(w.B) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// Seek implements the [io.Seeker] interface. Positions outside [0, len(B)] are rejected.
func (w *BufferOutflow) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(w.N) + offset
	case io.SeekEnd:
		abs = int64(len(w.B)) + offset
	default:
		return int64(w.N), ErrInvalidWhence
	}

	if abs < 0 || abs > int64(len(w.B)) {
		return int64(w.N), ErrInvalidSeek
	}

	w.N = int(abs)
	return abs, nil
}

// Grow ensures space for another n bytes past the end of the store without another allocation.
func (w *BufferOutflow) Grow(n int) {
	if n > cap(w.B)-len(w.B) {
		tmp := make([]byte, len(w.B), len(w.B)+n)
		copy(tmp, w.B)
		w.B = tmp
	}
}

// Flush do nothing
func (w *BufferOutflow) Flush() error { return nil }

// Close do nothing
func (w *BufferOutflow) Close() error { return nil }

// Reset empties the store, keeping its capacity for reuse.
func (w *BufferOutflow) Reset() {
	w.B = w.B[:0]
	w.N = 0
}

// Len returns the length of the store.
func (w *BufferOutflow) Len() int { return len(w.B) }

// Bytes returns a view of the store. It is only valid until the next write.
func (w *BufferOutflow) Bytes() []byte { return w.B }
