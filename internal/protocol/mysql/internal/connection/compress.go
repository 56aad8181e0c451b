package connection

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"net"

	"github.com/meoying/dbdriver/internal/errs"
)

// minCompressLength 小于这个长度的报文压缩不划算，
// 原样发送，压缩头里的未压缩长度填 0 表示“没压”
const minCompressLength = 50

// compressor 压缩协议的帧编解码器。
// 压缩帧有自己的 7 字节头部：3 字节压缩后长度、1 字节序号、3 字节压缩前长度，
// 序号和普通报文的序号彼此独立，但同样在命令边界归零
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_compression.html
type compressor struct {
	conn     net.Conn
	sequence uint8

	// rbuf 解压之后还没被上层读走的数据
	rbuf bytes.Buffer
}

func newCompressor(conn net.Conn) *compressor {
	return &compressor{conn: conn}
}

func (c *compressor) resetSequence() {
	c.sequence = 0
}

// Read 先耗尽本地缓存，不够就再读一个压缩帧进来
func (c *compressor) Read(p []byte) (int, error) {
	for c.rbuf.Len() == 0 {
		if err := c.readFrame(); err != nil {
			return 0, err
		}
	}
	return c.rbuf.Read(p)
}

func (c *compressor) readFrame() error {
	header := make([]byte, 7)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		return wrapIOErr("读取压缩帧头部", err)
	}

	// 压缩后长度 [24 bit]
	compLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)

	if header[3] != c.sequence {
		return fmt.Errorf("%w，压缩帧预期 %d，实际 %d", errs.ErrPktSync, c.sequence, header[3])
	}
	c.sequence++

	// 压缩前长度 [24 bit]，为 0 表示这一帧根本没压
	uncompLen := int(uint32(header[4]) | uint32(header[5])<<8 | uint32(header[6])<<16)

	body := make([]byte, compLen)
	if _, err := io.ReadFull(c.conn, body); err != nil {
		return wrapIOErr("读取压缩帧", err)
	}

	if uncompLen == 0 {
		c.rbuf.Write(body)
		return nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w，解压失败 %w", errs.ErrInvalidConn, err)
	}
	defer func() { _ = zr.Close() }()
	if _, err = io.CopyN(&c.rbuf, zr, int64(uncompLen)); err != nil {
		return fmt.Errorf("%w，解压失败 %w", errs.ErrInvalidConn, err)
	}
	return nil
}

// Write 把一次写入封成一个压缩帧
// 传输层保证一次 Write 恰好是一个完整的物理报文
func (c *compressor) Write(p []byte) (int, error) {
	var frame []byte
	if len(p) < minCompressLength {
		frame = c.buildFrame(p, 0)
	} else {
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		if _, err := zw.Write(p); err != nil {
			return 0, fmt.Errorf("%w，压缩失败 %w", errs.ErrInvalidConn, err)
		}
		if err := zw.Close(); err != nil {
			return 0, fmt.Errorf("%w，压缩失败 %w", errs.ErrInvalidConn, err)
		}
		frame = c.buildFrame(z.Bytes(), len(p))
	}

	if _, err := c.conn.Write(frame); err != nil {
		return 0, wrapIOErr("写入压缩帧", err)
	}
	c.sequence++
	return len(p), nil
}

// buildFrame 拼压缩帧：uncompLen 为 0 表示 body 未经压缩
func (c *compressor) buildFrame(body []byte, uncompLen int) []byte {
	frame := make([]byte, 7, 7+len(body))
	frame[0] = byte(len(body))
	frame[1] = byte(len(body) >> 8)
	frame[2] = byte(len(body) >> 16)
	frame[3] = c.sequence
	frame[4] = byte(uncompLen)
	frame[5] = byte(uncompLen >> 8)
	frame[6] = byte(uncompLen >> 16)
	return append(frame, body...)
}
