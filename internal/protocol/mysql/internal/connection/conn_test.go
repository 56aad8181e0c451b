package connection

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// pipePair 返回管道两端各自的传输层
func pipePair() (*Conn, *Conn) {
	c1, c2 := net.Pipe()
	return NewConn(c1, DefaultMaxAllowedPacket), NewConn(c2, DefaultMaxAllowedPacket)
}

func TestConn_WriteReadRoundTrip(t *testing.T) {
	a, b := pipePair()
	defer func() {
		_ = a.Close()
		_ = b.Close()
	}()

	var eg errgroup.Group
	eg.Go(func() error {
		data := make([]byte, 4, 9)
		return a.WritePacket(append(data, 'h', 'e', 'l', 'l', 'o'))
	})

	payload, err := b.ReadPacket()
	require.NoError(t, err)
	require.NoError(t, eg.Wait())
	assert.Equal(t, []byte("hello"), payload)
	// 双方的序号同步推进
	assert.Equal(t, uint8(1), a.Sequence())
	assert.Equal(t, uint8(1), b.Sequence())
}

func TestConn_SequenceMismatch(t *testing.T) {
	raw1, raw2 := net.Pipe()
	mc := NewConn(raw2, DefaultMaxAllowedPacket)
	defer func() { _ = mc.Close() }()

	var eg errgroup.Group
	eg.Go(func() error {
		// 序号为 5 的报文，而接收方预期 0
		_, err := raw1.Write([]byte{0x01, 0x00, 0x00, 0x05, 0xAA})
		return err
	})

	_, err := mc.ReadPacket()
	require.NoError(t, eg.Wait())
	assert.ErrorIs(t, err, errs.ErrPktSync)
}

func TestConn_SplitPacket(t *testing.T) {
	a, b := pipePair()
	defer func() {
		_ = a.Close()
		_ = b.Close()
	}()

	// 恰好一个报文上限的载荷要拆成一个满报文加一个零长度报文
	payload := bytes.Repeat([]byte{0x5A}, packet.MaxPacketSize)
	data := make([]byte, 4+len(payload))
	copy(data[4:], payload)

	var eg errgroup.Group
	eg.Go(func() error {
		return a.WritePacket(data)
	})

	got, err := b.ReadPacket()
	require.NoError(t, err)
	require.NoError(t, eg.Wait())
	assert.Equal(t, payload, got)
	// 满报文一个序号，零长度报文一个序号
	assert.Equal(t, uint8(2), a.Sequence())
	assert.Equal(t, uint8(2), b.Sequence())
}

func TestConn_EmptyPacketWithoutPredecessor(t *testing.T) {
	raw1, raw2 := net.Pipe()
	mc := NewConn(raw2, DefaultMaxAllowedPacket)
	defer func() { _ = mc.Close() }()

	var eg errgroup.Group
	eg.Go(func() error {
		_, err := raw1.Write([]byte{0x00, 0x00, 0x00, 0x00})
		return err
	})

	_, err := mc.ReadPacket()
	require.NoError(t, eg.Wait())
	assert.ErrorIs(t, err, errs.ErrInvalidConn)
}

func TestConn_MaxAllowedPacketExceeded(t *testing.T) {
	raw1, raw2 := net.Pipe()
	mc := NewConn(raw2, 16)
	defer func() { _ = mc.Close() }()

	var eg errgroup.Group
	eg.Go(func() error {
		frame := append([]byte{0x11, 0x00, 0x00, 0x00}, bytes.Repeat([]byte{0x01}, 0x11)...)
		_, err := raw1.Write(frame)
		return err
	})

	_, err := mc.ReadPacket()
	assert.ErrorIs(t, err, errs.ErrPktTooLarge)
	_ = eg.Wait()
}

func TestConn_ReadTimeout(t *testing.T) {
	_, raw2 := net.Pipe()
	mc := NewConn(raw2, DefaultMaxAllowedPacket)
	defer func() { _ = mc.Close() }()

	require.NoError(t, mc.ResetTimeout(10*time.Millisecond))
	_, err := mc.ReadPacket()
	assert.ErrorIs(t, err, errs.ErrTimeout)
}

func TestConn_Compression(t *testing.T) {
	testcases := []struct {
		name    string
		payload []byte
	}{
		{
			// 低于压缩阈值，帧里是原文
			name:    "below threshold",
			payload: []byte("SELECT 1"),
		},
		{
			name:    "compressed",
			payload: bytes.Repeat([]byte("abcdefgh"), 512),
		},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			a, b := pipePair()
			defer func() {
				_ = a.Close()
				_ = b.Close()
			}()
			a.EnableCompression()
			b.EnableCompression()

			data := make([]byte, 4+len(tc.payload))
			copy(data[4:], tc.payload)

			var eg errgroup.Group
			eg.Go(func() error {
				return a.WritePacket(data)
			})

			got, err := b.ReadPacket()
			require.NoError(t, err)
			require.NoError(t, eg.Wait())
			assert.Equal(t, tc.payload, got)
		})
	}
}

func TestCompressor_FrameLayout(t *testing.T) {
	raw1, raw2 := net.Pipe()
	defer func() {
		_ = raw1.Close()
		_ = raw2.Close()
	}()
	c := newCompressor(raw1)

	payload := []byte("ping")
	var eg errgroup.Group
	eg.Go(func() error {
		_, err := c.Write(payload)
		return err
	})

	frame := make([]byte, 7+len(payload))
	_, err := raw2.Read(frame)
	require.NoError(t, err)
	require.NoError(t, eg.Wait())

	// 3 字节压缩后长度、1 字节序号、3 字节压缩前长度（0 表示没压）
	assert.Equal(t, []byte{0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, frame[:7])
	assert.Equal(t, payload, frame[7:])
}
