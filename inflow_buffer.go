package flow

import "io"

// BufferInflow is an Inflow that reads from an in-memory byte slice.
// The cursor N stays within [0, len(B)].
type BufferInflow struct {
	B []byte // source slice
	N int    // current read position
}

var (
	_ Inflow        = (*BufferInflow)(nil)
	_ io.ReadSeeker = (*BufferInflow)(nil)
)

// NewBufferInflow creates a new BufferInflow positioned at the start of b.
func NewBufferInflow(b []byte) *BufferInflow {
	return &BufferInflow{B: b}
}

func (r *BufferInflow) peek(n int) ([]byte, error) {
	if r.N >= len(r.B) {
		return nil, nil
	}
	p := r.B[r.N:]
	if len(p) > n {
		p = p[:n]
	}
	return p, nil
}

func (r *BufferInflow) take(n int) ([]byte, error) {
	if n > r.Available() {
		return nil, underrun(n, r.Available())
	}
	p := r.B[r.N : r.N+n]
	r.N += n
	return p, nil
}

func (r *BufferInflow) GetByte() (byte, error)     { return getByte(r) }
func (r *BufferInflow) GetUInt8() (uint8, error)   { return getByte(r) }
func (r *BufferInflow) GetBoolean() (bool, error)  { return getBoolean(r) }
func (r *BufferInflow) GetUInt() (uint32, error)   { return getUInt(r) }
func (r *BufferInflow) GetString() (string, error) { return getString(r) }

// GetByteArray reads exactly length raw bytes into a new slice.
func (r *BufferInflow) GetByteArray(length int) ([]byte, error) {
	return getByteArray(r, length)
}

func (r *BufferInflow) GetInt8() (int8, error) {
	b, err := getByte(r)
	return int8(b), err
}

func (r *BufferInflow) GetFlagsBlock() ([8]bool, error) {
	b, err := getByte(r)
	if err != nil {
		return [8]bool{}, err
	}
	return UnpackFlags(b), nil
}

func (r *BufferInflow) GetUInt16() (uint16, error)   { return getFixed(r, 2, LE.Uint16) }
func (r *BufferInflow) GetInt16() (int16, error)     { return getFixed(r, 2, beInt16) }
func (r *BufferInflow) GetUInt31() (uint32, error)   { return getFixed(r, 4, beUInt31) }
func (r *BufferInflow) GetUInt32() (uint32, error)   { return getFixed(r, 4, BE.Uint32) }
func (r *BufferInflow) GetInt32() (int32, error)     { return getFixed(r, 4, beInt32) }
func (r *BufferInflow) GetInt64() (int64, error)     { return getFixed(r, 8, beInt64) }
func (r *BufferInflow) GetFloat32() (float32, error) { return getFixed(r, 4, beFloat32) }
func (r *BufferInflow) GetFloat64() (float64, error) { return getFixed(r, 8, beFloat64) }

func (r *BufferInflow) GetInt32Array() ([]int32, error)     { return getArray(r, 4, beInt32) }
func (r *BufferInflow) GetUInt32Array() ([]uint32, error)   { return getArray(r, 4, BE.Uint32) }
func (r *BufferInflow) GetInt64Array() ([]int64, error)     { return getArray(r, 8, beInt64) }
func (r *BufferInflow) GetFloat32Array() ([]float32, error) { return getArray(r, 4, beFloat32) }
func (r *BufferInflow) GetFloat64Array() ([]float64, error) { return getArray(r, 8, beFloat64) }

// Close does nothing.
func (r *BufferInflow) Close() error {
	return nil
}

// Read implements the [io.Reader] interface.
func (r *BufferInflow) Read(p []byte) (int, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	n := copy(p, r.B[r.N:])
	r.N += n
	return n, nil
}

// ReadByte implements the [io.ByteReader] interface.
func (r *BufferInflow) ReadByte() (byte, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	b := r.B[r.N]
	r.N++
	return b, nil
}

// WriteTo implements the [io.WriterTo] interface for efficiency.
func (r *BufferInflow) WriteTo(w io.Writer) (int64, error) {
	if w == nil {
		return 0, ErrWriteToNil
	}
	if r.N >= len(r.B) {
		return 0, nil
	}

	n, err := w.Write(r.B[r.N:])
	if n < 0 || n > r.Available() {
		return 0, io.ErrShortWrite
	}
	r.N += n
	return int64(n), err
}

// Seek implements the [io.Seeker] interface. Positions outside [0, len(B)] are rejected.
func (r *BufferInflow) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(r.N) + offset
	case io.SeekEnd:
		abs = int64(len(r.B)) + offset
	default:
		return int64(r.N), ErrInvalidWhence
	}

	if abs < 0 || abs > int64(len(r.B)) {
		return int64(r.N), ErrInvalidSeek
	}

	r.N = int(abs)
	return abs, nil
}

// Reset rewinds the cursor so the slice can be read again.
func (r *BufferInflow) Reset() { r.N = 0 }

// Len returns the number of bytes read.
func (r *BufferInflow) Len() int { return r.N }

// Size returns the size of the underlying byte slice.
func (r *BufferInflow) Size() int { return len(r.B) }

// Available returns the number of bytes available for reading.
func (r *BufferInflow) Available() int {
	length := len(r.B) - r.N
	if length <= 0 {
		return 0
	}
	return length
}
