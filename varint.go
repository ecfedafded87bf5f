package flow

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// MaxUIntLen is the maximum number of bytes of an extensible unsigned integer.
const MaxUIntLen = 5

// UIntLen returns the number of bytes v occupies as an extensible unsigned integer.
// Zero takes one byte.
func UIntLen[T constraints.Unsigned](v T) int {
	n := bits.Len64(uint64(v))
	if n == 0 {
		return 1
	}
	return (n + 6) / 7
}

// AppendUInt appends v to dst as an extensible unsigned integer:
// 7 payload bits per byte, least-significant group first, bit 7 set on
// every byte except the last.
func AppendUInt(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// ParseUInt decodes an extensible unsigned integer from the start of b and
// returns the value and the number of bytes consumed.
// It returns ErrUnderrun if b ends inside the integer and ErrMalformedUInt
// if the chain runs past MaxUIntLen bytes or the value exceeds 32 bits.
func ParseUInt(b []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < MaxUIntLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrUnderrun
		}
		c := b[i]
		if i == MaxUIntLen-1 && c > 0x0f {
			// last group holds the top 4 bits; anything above is overflow or a continuation
			return 0, 0, ErrMalformedUInt
		}
		v |= uint32(c&0x7f) << (7 * i)
		if c < 0x80 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrMalformedUInt
}

// PackFlags packs 8 booleans into one byte, flag i in bit i.
func PackFlags(flags [8]bool) byte {
	var b byte
	for i, f := range flags {
		if f {
			b |= 1 << i
		}
	}
	return b
}

// UnpackFlags is the inverse of PackFlags.
func UnpackFlags(b byte) [8]bool {
	var flags [8]bool
	for i := range flags {
		flags[i] = b&(1<<i) != 0
	}
	return flags
}
