package flow

import (
	"fmt"
	"math"
)

// source is the positional byte store behind an Inflow.
type source interface {
	// peek returns up to n bytes at the cursor without consuming them.
	// A short result means the data ends there.
	peek(n int) ([]byte, error)
	// take consumes exactly n bytes. On failure the cursor is unchanged.
	// The result is only valid until the next call on the source.
	take(n int) ([]byte, error)
}

func underrun(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, %d available", ErrUnderrun, need, have)
}

func getByte(s source) (byte, error) {
	p, err := s.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func getBoolean(s source) (bool, error) {
	p, err := s.peek(1)
	if err != nil {
		return false, err
	}
	if len(p) < 1 {
		return false, underrun(1, 0)
	}
	var v bool
	switch p[0] {
	case BoolTrue:
		v = true
	case BoolFalse:
		v = false
	default:
		return false, fmt.Errorf("%w: 0x%02x", ErrInvalidBoolean, p[0])
	}
	_, err = s.take(1)
	return v, err
}

func getByteArray(s source, length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}
	p, err := s.take(length)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), p...), nil
}

func getFixed[T any](s source, width int, get func([]byte) T) (T, error) {
	p, err := s.take(width)
	if err != nil {
		var zero T
		return zero, err
	}
	return get(p), nil
}

// getUInt peeks one byte more at a time until the terminating byte, so a
// stream never waits for bytes past the end of the integer.
func getUInt(s source) (uint32, error) {
	var p []byte
	for want := 1; want <= MaxUIntLen; want++ {
		var err error
		if p, err = s.peek(want); err != nil {
			return 0, err
		}
		if len(p) < want {
			return 0, underrun(want, len(p))
		}
		if p[want-1] < 0x80 {
			break
		}
	}
	v, n, err := ParseUInt(p)
	if err != nil {
		return 0, err
	}
	if _, err := s.take(n); err != nil {
		return 0, err
	}
	return v, nil
}

// getSequence reads a length prefix and the payload it announces as one
// unit, so an underrun in the payload does not consume the prefix.
func getSequence(s source, width int) (int, []byte, error) {
	head, err := s.peek(lengthSize)
	if err != nil {
		return 0, nil, err
	}
	if len(head) < lengthSize {
		return 0, nil, underrun(lengthSize, len(head))
	}
	n := int(LE.Uint16(head))
	p, err := s.take(sequenceSize(n, width))
	if err != nil {
		return 0, nil, err
	}
	return n, p[lengthSize:], nil
}

func getArray[T any](s source, width int, get func([]byte) T) ([]T, error) {
	n, p, err := getSequence(s, width)
	if err != nil {
		return nil, err
	}
	arr := make([]T, n)
	for i := range arr {
		arr[i] = get(p[i*width:])
	}
	return arr, nil
}

func getString(s source) (string, error) {
	_, p, err := getSequence(s, 1)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// element decoders shared by fixed values and arrays

func beInt16(p []byte) int16     { return int16(BE.Uint16(p)) }
func beInt32(p []byte) int32     { return int32(BE.Uint32(p)) }
func beInt64(p []byte) int64     { return int64(BE.Uint64(p)) }
func beUInt31(p []byte) uint32   { return BE.Uint32(p) & MaxUInt31 }
func beFloat32(p []byte) float32 { return math.Float32frombits(BE.Uint32(p)) }
func beFloat64(p []byte) float64 { return math.Float64frombits(BE.Uint64(p)) }
