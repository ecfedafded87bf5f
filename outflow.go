package flow

import (
	"fmt"
	"math"
)

// sink is the positional byte store behind an Outflow.
type sink interface {
	// reserve returns n writable bytes for the next commit.
	reserve(n int) []byte
	// commit writes p, as returned by reserve, at the cursor.
	commit(p []byte) error
}

func putBytes(s sink, b []byte) error {
	p := s.reserve(len(b))
	copy(p, b)
	return s.commit(p)
}

func putFixed[T any](s sink, width int, put func([]byte, T), v T) error {
	p := s.reserve(width)
	put(p, v)
	return s.commit(p)
}

func putBoolean(s sink, v bool) error {
	if v {
		return putBytes(s, []byte{BoolTrue})
	}
	return putBytes(s, []byte{BoolFalse})
}

func putFlags8(s sink, flags []bool) error {
	if len(flags) != 8 {
		return fmt.Errorf("%w: got %d", ErrFlagsCount, len(flags))
	}
	return putBytes(s, []byte{PackFlags([8]bool(flags))})
}

func putUInt31(s sink, v uint32) error {
	if v > MaxUInt31 {
		return fmt.Errorf("%w: %d", ErrUInt31Overflow, v)
	}
	return putFixed(s, 4, BE.PutUint32, v)
}

func putUInt(s sink, v uint32) error {
	p := s.reserve(UIntLen(v))
	AppendUInt(p[:0], v)
	return s.commit(p)
}

// putArray writes the length prefix and all elements as one unit.
func putArray[T any](s sink, arr []T, width int, put func([]byte, T)) error {
	if err := checkLength(len(arr)); err != nil {
		return err
	}
	p := s.reserve(sequenceSize(len(arr), width))
	LE.PutUint16(p, uint16(len(arr)))
	for i, v := range arr {
		put(p[lengthSize+i*width:], v)
	}
	return s.commit(p)
}

func putString(s sink, str string) error {
	if err := checkLength(len(str)); err != nil {
		return err
	}
	p := s.reserve(sequenceSize(len(str), 1))
	LE.PutUint16(p, uint16(len(str)))
	copy(p[lengthSize:], str)
	return s.commit(p)
}

// element encoders shared by fixed values and arrays

func bePutInt16(p []byte, v int16)     { BE.PutUint16(p, uint16(v)) }
func bePutInt32(p []byte, v int32)     { BE.PutUint32(p, uint32(v)) }
func bePutInt64(p []byte, v int64)     { BE.PutUint64(p, uint64(v)) }
func bePutFloat32(p []byte, v float32) { BE.PutUint32(p, math.Float32bits(v)) }
func bePutFloat64(p []byte, v float64) { BE.PutUint64(p, math.Float64bits(v)) }
