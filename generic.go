package flow

import "fmt"

// Marshal encodes v into a new byte slice.
// If v implements Sizer the result is allocated once at its exact size;
// otherwise v is encoded through a pooled buffer and copied out.
func Marshal(v Encodable) ([]byte, error) {
	if s, ok := v.(Sizer); ok {
		w := NewBufferOutflow(s.Size())
		if err := v.EncodeTo(w); err != nil {
			return nil, err
		}
		return w.Bytes(), nil
	}
	return MarshalAppend(nil, v)
}

// MarshalAppend encodes v and appends the bytes to dst.
func MarshalAppend(dst []byte, v Encodable) ([]byte, error) {
	w := getOutflow()
	defer putOutflow(w)

	if err := v.EncodeTo(w); err != nil {
		return dst, err
	}
	return append(dst, w.Bytes()...), nil
}

// Unmarshal decodes v from data.
// Unread trailing bytes must be zero padding; anything else means the
// payload and v disagree about the layout.
func Unmarshal(data []byte, v Decodable) error {
	r := NewBufferInflow(data)
	if err := v.DecodeFrom(r); err != nil {
		return err
	}
	if r.Available() > 0 {
		if err := CheckBufferNotZeros(r.B[r.N:]); err != nil {
			return fmt.Errorf("%w: %d bytes left after offset %d", err, r.Available(), r.N)
		}
	}
	return nil
}
