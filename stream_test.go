package flow

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// failingWriter rejects every write.
type failingWriter struct{ err error }

func (w *failingWriter) Write(p []byte) (int, error) { return 0, w.err }

// closeTracker records whether Close was called.
type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

// --- StreamOutflow Test Suite ---

type StreamOutflowTestSuite struct {
	suite.Suite
	buf *bytes.Buffer
	out *StreamOutflow
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *StreamOutflowTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.out, _ = NewStreamOutflow(s.buf)
}

func (s *StreamOutflowTestSuite) TestConstructors() {
	s.T().Run("NilWriter", func(t *testing.T) {
		_, err := NewStreamOutflow(nil)
		assert.ErrorIs(t, err, ErrNilIO)
	})

	s.T().Run("SmallBufioWriter", func(t *testing.T) {
		_, err := NewStreamOutflowSize(bufio.NewWriterSize(&bytes.Buffer{}, 16), 1024)
		assert.ErrorIs(t, err, ErrAlreadyBuffered)
	})
}

func (s *StreamOutflowTestSuite) TestBufferedUntilFlush() {
	s.Require().NoError(s.out.PutUInt16(300))
	s.Require().NoError(s.out.PutUInt(300))
	s.Assert().Zero(s.buf.Len(), "data stays in the bufio buffer until Flush")

	n, err := s.out.Result()
	s.Require().NoError(err)
	s.Assert().EqualValues(4, n)
	s.Assert().Equal([]byte{0x2C, 0x01, 0xAC, 0x02}, s.buf.Bytes())
}

func (s *StreamOutflowTestSuite) TestNestedFlush() {
	inner, err := NewStreamOutflowSize(s.out, 16)
	s.Require().NoError(err)

	s.Require().NoError(inner.PutInt32(-1))
	s.Require().NoError(inner.Flush())
	s.Assert().Zero(s.buf.Len(), "only the outermost outflow flushes")

	s.Require().NoError(s.out.Flush())
	s.Assert().Equal([]byte{0xFF, 0xFF, 0xFF, 0xFF}, s.buf.Bytes())
}

func (s *StreamOutflowTestSuite) TestErrorHandling() {
	s.T().Run("TransportErrorIsLatched", func(t *testing.T) {
		boom := errors.New("boom")
		out, err := NewStreamOutflowSize(&failingWriter{boom}, 16)
		require.NoError(t, err)

		// larger than the buffer, so bufio writes through immediately
		err = out.PutByteArray(make([]byte, 32))
		require.ErrorIs(t, err, boom)

		assert.ErrorIs(t, out.PutByte(1), boom, "writes after an error return the latched error")
		assert.ErrorIs(t, out.Err(), boom)
	})

	s.T().Run("ValidationIsNotLatched", func(t *testing.T) {
		out, _ := NewStreamOutflow(&bytes.Buffer{})
		assert.ErrorIs(t, out.PutFlags8([]bool{true}), ErrFlagsCount)
		assert.NoError(t, out.Err())
		assert.NoError(t, out.PutByte(1))
	})
}

func (s *StreamOutflowTestSuite) TestClose() {
	c := &closeTracker{}
	out, err := NewStreamOutflow(c)
	s.Require().NoError(err)
	s.Require().NoError(out.PutString("ok"))
	s.Require().NoError(out.Close())

	s.Assert().True(c.closed)
	s.Assert().Equal([]byte{2, 0, 'o', 'k'}, c.Bytes())
}

// TestStreamOutflow runs the StreamOutflowTestSuite.
func TestStreamOutflow(t *testing.T) {
	suite.Run(t, new(StreamOutflowTestSuite))
}

// --- StreamInflow Test Suite ---

type StreamInflowTestSuite struct {
	suite.Suite
}

func (s *StreamInflowTestSuite) TestConstructors() {
	s.T().Run("NilReader", func(t *testing.T) {
		_, err := NewStreamInflow(nil)
		assert.ErrorIs(t, err, ErrNilIO)
	})

	s.T().Run("SizeTooSmall", func(t *testing.T) {
		_, err := NewStreamInflowSize(bytes.NewReader(nil), 8)
		assert.ErrorIs(t, err, ErrSizeTooSmall)
	})

	s.T().Run("SmallBufioReader", func(t *testing.T) {
		_, err := NewStreamInflowSize(bufio.NewReaderSize(bytes.NewReader(nil), 16), 1024)
		assert.ErrorIs(t, err, ErrAlreadyBuffered)
	})

	s.T().Run("ReusesBufioReader", func(t *testing.T) {
		br := bufio.NewReaderSize(bytes.NewReader([]byte{0x20}), 64)
		in, err := NewStreamInflowSize(br, 32)
		require.NoError(t, err)
		v, err := in.GetBoolean()
		require.NoError(t, err)
		assert.True(t, v)
	})
}

func (s *StreamInflowTestSuite) TestUnderrunIsAtomic() {
	in, err := NewStreamInflow(bytes.NewReader([]byte{0x2C, 0x01, 0x00}))
	s.Require().NoError(err)

	_, err = in.GetInt32()
	s.Require().ErrorIs(err, ErrUnderrun)
	s.Assert().NoError(in.Err(), "an atomic underrun is not latched")
	s.Assert().Zero(in.Count())

	v, err := in.GetUInt16()
	s.Require().NoError(err)
	s.Assert().Equal(uint16(300), v)
	s.Assert().EqualValues(2, in.Count())
}

func (s *StreamInflowTestSuite) TestUIntOnOpenStream() {
	pr, pw := io.Pipe()
	defer pw.Close()
	in, err := NewStreamInflow(pr)
	s.Require().NoError(err)

	for _, tc := range []struct {
		wire []byte
		want uint32
	}{
		{[]byte{0x05}, 5},
		{[]byte{0xAC, 0x02}, 300},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}, 0xFFFFFFFF},
	} {
		go pw.Write(tc.wire)

		done := make(chan uint32, 1)
		go func() {
			v, err := in.GetUInt()
			if err == nil {
				done <- v
			}
			close(done)
		}()

		select {
		case v, ok := <-done:
			s.Require().True(ok, "GetUInt failed on % x", tc.wire)
			s.Assert().Equal(tc.want, v)
		case <-time.After(time.Second):
			s.FailNow("GetUInt waited for bytes past the integer", "% x", tc.wire)
		}
	}
	s.Assert().EqualValues(8, in.Count())
}

func (s *StreamInflowTestSuite) TestOversizedUnderrunIsLatched() {
	in, err := NewStreamInflowSize(bytes.NewReader(make([]byte, 20)), 16)
	s.Require().NoError(err)

	_, err = in.GetByteArray(32)
	s.Require().ErrorIs(err, ErrUnderrun)
	s.Assert().ErrorIs(in.Err(), ErrUnderrun)

	_, err = in.GetByte()
	s.Assert().ErrorIs(err, ErrUnderrun)
	n, err := in.Result()
	s.Assert().EqualValues(20, n)
	s.Assert().Error(err)
}

func (s *StreamInflowTestSuite) TestOversizedRead() {
	payload := bytes.Repeat([]byte{7}, 100)
	out := NewBufferOutflow(0)
	s.Require().NoError(out.PutByteArray(payload))
	s.Require().NoError(out.PutUInt16(9))

	in, err := NewStreamInflowSize(bytes.NewReader(out.Bytes()), 16)
	s.Require().NoError(err)
	got, err := in.GetByteArray(100)
	s.Require().NoError(err)
	s.Assert().Equal(payload, got)
	v, err := in.GetUInt16()
	s.Require().NoError(err)
	s.Assert().Equal(uint16(9), v)
}

func (s *StreamInflowTestSuite) TestReadAfterDecode() {
	in, err := NewStreamInflow(bytes.NewReader([]byte{0x05, 'r', 'e', 's', 't'}))
	s.Require().NoError(err)

	flags, err := in.GetFlagsBlock()
	s.Require().NoError(err)
	s.Assert().Equal([8]bool{true, false, true}, flags)

	rest, err := io.ReadAll(in)
	s.Require().NoError(err)
	s.Assert().Equal([]byte("rest"), rest)
	s.Assert().EqualValues(5, in.Count())
	s.Assert().NoError(in.Close())
}

// TestStreamInflow runs the StreamInflowTestSuite.
func TestStreamInflow(t *testing.T) {
	suite.Run(t, new(StreamInflowTestSuite))
}

func TestStream_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	out, err := NewStreamOutflowSize(&buf, 16)
	require.NoError(t, err)

	want := newSample()
	writeSample(t, out, want)
	n, err := out.Result()
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)

	// the stream encoding must be byte-identical to the buffer encoding
	ref := NewBufferOutflow(0)
	writeSample(t, ref, want)
	assert.Equal(t, ref.Bytes(), buf.Bytes())

	in, err := NewStreamInflowSize(&buf, 16)
	require.NoError(t, err)
	got := readSample(t, in)
	assert.Equal(t, want, got)
	assert.EqualValues(t, n, in.Count())
}
