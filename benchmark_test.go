package flow

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type benchmarkMessage struct {
	ID    uint32
	Val1  int64
	Val2  int64
	Alive bool
	Name  string
}

func (m *benchmarkMessage) EncodeTo(out Outflow) error {
	if err := out.PutUInt(m.ID); err != nil {
		return err
	}
	if err := out.PutInt64(m.Val1); err != nil {
		return err
	}
	if err := out.PutInt64(m.Val2); err != nil {
		return err
	}
	if err := out.PutBoolean(m.Alive); err != nil {
		return err
	}
	return out.PutString(m.Name)
}

func (m *benchmarkMessage) DecodeFrom(in Inflow) (err error) {
	if m.ID, err = in.GetUInt(); err != nil {
		return err
	}
	if m.Val1, err = in.GetInt64(); err != nil {
		return err
	}
	if m.Val2, err = in.GetInt64(); err != nil {
		return err
	}
	if m.Alive, err = in.GetBoolean(); err != nil {
		return err
	}
	m.Name, err = in.GetString()
	return err
}

// int64Rejecter fails every PutInt64 and records everything else.
type int64Rejecter struct {
	*BufferOutflow
}

var errRejected = errors.New("rejected")

func (w int64Rejecter) PutInt64(int64) error { return errRejected }

func TestBenchmarkMessage_EncodeStopsAtFirstError(t *testing.T) {
	m := &benchmarkMessage{ID: 1, Val1: 100, Alive: true, Name: "x"}
	out := int64Rejecter{NewBufferOutflow(0)}

	err := m.EncodeTo(out)
	require.ErrorIs(t, err, errRejected)
	assert.Equal(t, []byte{0x01}, out.Bytes(), "nothing is written after the failed field")

	data, err := Marshal(m)
	require.NoError(t, err)
	var got benchmarkMessage
	require.NoError(t, Unmarshal(data, &got))
	assert.Equal(t, *m, got)
}

func BenchmarkMarshal(b *testing.B) {
	m := &benchmarkMessage{ID: 1, Val1: 100, Name: "benchmark"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Marshal(m)
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	m := &benchmarkMessage{ID: 1, Val1: 100, Name: "benchmark"}
	data, _ := Marshal(m)
	var m2 benchmarkMessage
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Unmarshal(data, &m2)
	}
}

func BenchmarkBufferOutflowReuse(b *testing.B) {
	m := &benchmarkMessage{ID: 1, Val1: 100, Name: "benchmark"}
	out := NewBufferOutflow(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out.Reset()
		_ = m.EncodeTo(out)
	}
}

func BenchmarkPutUInt(b *testing.B) {
	out := NewBufferOutflow(MaxUIntLen)
	for i := 0; i < b.N; i++ {
		out.Reset()
		_ = out.PutUInt(uint32(i))
	}
}

// Baseline comparison using encoding/binary directly, to see overhead of the wrapper
func BenchmarkStandardBinaryAppend(b *testing.B) {
	buf := make([]byte, 0, 64)
	for i := 0; i < b.N; i++ {
		buf = binary.AppendUvarint(buf[:0], uint64(i))
		buf = binary.BigEndian.AppendUint64(buf, 100)
	}
}
