// Package flow implements a symmetric binary wire encoding over positional
// byte stores: an Inflow decodes what an Outflow encodes.
//
// Wire format:
//
//	int8, uint8                 1 byte
//	uint16                      2 bytes, little-endian
//	int16, (u)int32, int64      big-endian, two's complement
//	float32, float64            big-endian, IEEE-754
//	uint31                      4 bytes big-endian, top bit reserved
//	extensible uint             1-5 bytes, 7 bits per byte, LSB group first, bit 7 = continuation
//	flags block                 1 byte, bit i = flag i
//	boolean                     BoolTrue or BoolFalse
//	array, string               uint16 length + elements or UTF-8 bytes
package flow

// Inflow decodes values from the current read position. Each Get advances
// the position by exactly the encoded size of the value; a failed Get
// leaves it unchanged.
type Inflow interface {
	GetByte() (byte, error)
	GetUInt8() (uint8, error)
	GetInt8() (int8, error)
	GetBoolean() (bool, error)
	GetFlagsBlock() ([8]bool, error)
	GetByteArray(length int) ([]byte, error)

	GetUInt16() (uint16, error)
	GetInt16() (int16, error)
	GetUInt31() (uint32, error)
	GetUInt32() (uint32, error)
	GetInt32() (int32, error)
	GetInt64() (int64, error)
	GetFloat32() (float32, error)
	GetFloat64() (float64, error)
	GetUInt() (uint32, error)

	GetInt32Array() ([]int32, error)
	GetUInt32Array() ([]uint32, error)
	GetInt64Array() ([]int64, error)
	GetFloat32Array() ([]float32, error)
	GetFloat64Array() ([]float64, error)
	GetString() (string, error)
}

// Outflow encodes values at the current write position, growing or
// flushing its backing store as needed. Validation failures write nothing.
type Outflow interface {
	PutByte(b byte) error
	PutByteArray(b []byte) error
	PutUInt8(v uint8) error
	PutInt8(v int8) error
	PutBoolean(v bool) error
	PutFlags8(flags []bool) error

	PutUInt16(v uint16) error
	PutInt16(v int16) error
	PutUInt31(v uint32) error
	PutUInt32(v uint32) error
	PutInt32(v int32) error
	PutInt64(v int64) error
	PutFloat32(v float32) error
	PutFloat64(v float64) error
	PutUInt(v uint32) error

	PutInt32Array(arr []int32) error
	PutUInt32Array(arr []uint32) error
	PutInt64Array(arr []int64) error
	PutFloat32Array(arr []float32) error
	PutFloat64Array(arr []float64) error
	PutString(s string) error
}

// Encodable is implemented by types that write themselves to an Outflow.
type Encodable interface {
	EncodeTo(out Outflow) error
}

// Decodable is implemented by types that read themselves from an Inflow.
type Decodable interface {
	DecodeFrom(in Inflow) error
}

// Sizer is implemented by Encodable types that know their encoded size.
// Marshal uses it to pre-allocate.
type Sizer interface {
	Size() int
}
