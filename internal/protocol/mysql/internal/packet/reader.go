package packet

import (
	"encoding/binary"
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
)

// Reader 是一个带游标的报文载荷
// 所有的解析都通过它来推进游标，保证跳过一个值和读取一个值推进的距离一致。
// 它只被当前命令独占，不能跨命令持有
type Reader struct {
	payload []byte
	pos     int
}

func NewReader(payload []byte) *Reader {
	return &Reader{payload: payload}
}

// Len 剩余未读的字节数
func (r *Reader) Len() int {
	return len(r.payload) - r.pos
}

func (r *Reader) More() bool {
	return r.pos < len(r.payload)
}

// Payload 整个载荷，不受游标影响
func (r *Reader) Payload() []byte {
	return r.payload
}

// Header 载荷的第一个字节。用来判断这是一个什么响应
func (r *Reader) Header() byte {
	if len(r.payload) == 0 {
		return 0
	}
	return r.payload[0]
}

func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.payload) {
		return 0, fmt.Errorf("%w，读取越过载荷末尾", errs.ErrPktMalformed)
	}
	b := r.payload[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes 返回的切片引用底层载荷，调用方不能跨命令持有
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.payload) {
		return nil, fmt.Errorf("%w，预期 %d 字节，剩余 %d 字节", errs.ErrPktMalformed, n, r.Len())
	}
	b := r.payload[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) Skip(n int) error {
	if r.pos+n > len(r.payload) {
		return fmt.Errorf("%w，跳过 %d 字节越过载荷末尾", errs.ErrPktMalformed, n)
	}
	r.pos += n
	return nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadUint24() (uint32, error) {
	b, err := r.ReadBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadNulString 读取 string<NUL>
func (r *Reader) ReadNulString() (string, error) {
	for i := r.pos; i < len(r.payload); i++ {
		if r.payload[i] == 0x00 {
			s := string(r.payload[r.pos:i])
			r.pos = i + 1
			return s, nil
		}
	}
	return "", fmt.Errorf("%w，未找到字符串结束符", errs.ErrPktMalformed)
}

// ReadRestOfPacketString 读取 string<EOF>，也就是载荷剩下的全部内容
func (r *Reader) ReadRestOfPacketString() []byte {
	b := r.payload[r.pos:]
	r.pos = len(r.payload)
	return b
}

// ReadLenencInt 读取 int<lenenc>
// 第二个返回值代表这是不是一个 NULL 标记（长度语境下的 0xFB）
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_dt_integers.html#sect_protocol_basic_dt_int_le
func (r *Reader) ReadLenencInt() (uint64, bool, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, false, err
	}
	switch {
	case first < 0xFB:
		// [0, 251) 第一个字节就是数字
		return uint64(first), false, nil
	case first == 0xFB:
		return 0, true, nil
	case first == 0xFC:
		n, err := r.ReadUint16()
		return uint64(n), false, err
	case first == 0xFD:
		n, err := r.ReadUint24()
		return uint64(n), false, err
	case first == 0xFE:
		n, err := r.ReadUint64()
		return n, false, err
	default:
		// 0xFF 不是合法的 int<lenenc> 前缀
		return 0, false, fmt.Errorf("%w，非法的 int<lenenc> 前缀 %d", errs.ErrPktMalformed, first)
	}
}

// ReadLenencBytes 读取 string<lenenc>，NULL 标记返回 nil
func (r *Reader) ReadLenencBytes() ([]byte, error) {
	length, isNull, err := r.ReadLenencInt()
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	return r.ReadBytes(int(length))
}

func (r *Reader) ReadLenencString() (string, error) {
	b, err := r.ReadLenencBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SkipLenencBytes 跳过一个 string<lenenc>，游标推进的距离和读取它一致
func (r *Reader) SkipLenencBytes() error {
	length, isNull, err := r.ReadLenencInt()
	if err != nil {
		return err
	}
	if isNull {
		return nil
	}
	return r.Skip(int(length))
}
