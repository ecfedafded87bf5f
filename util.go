package flow

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
)

const (
	// MaxLength is the largest element or byte count a length prefix can carry.
	MaxLength = 1<<16 - 1

	// MaxUInt31 is the largest value PutUInt31 accepts.
	MaxUInt31 = 1<<31 - 1

	// BoolTrue and BoolFalse are the only byte values a boolean may take on the wire.
	BoolTrue  byte = 0x20
	BoolFalse byte = 0x21

	// lengthSize is the width of the length prefix.
	lengthSize = 2
)

// BUFFER_SIZE is the default bufio size of stream flows.
const BUFFER_SIZE = 4096

// Roundup rounds n up to the nearest multiple of align.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// checkLength verifies that n elements fit a length prefix.
func checkLength[T constraints.Integer](n T) error {
	if n < 0 || uint64(n) > MaxLength {
		return fmt.Errorf("%w: %d > %d", ErrLengthOverflow, n, MaxLength)
	}
	return nil
}

// sequenceSize returns the encoded size of a length-prefixed sequence of n elements of width bytes.
func sequenceSize(n, width int) int { return lengthSize + n*width }

// CheckBufferNotZeros verifies that every byte in b is zero.
func CheckBufferNotZeros(b []byte) error {
	for i, c := range b {
		if c != 0 {
			return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingData, c, i)
		}
	}
	return nil
}
