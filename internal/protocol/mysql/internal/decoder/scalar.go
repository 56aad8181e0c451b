package decoder

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// readRaw 取出值的原始字节：
// 文本协议给了显式长度，二进制协议变长类型自带 int<lenenc> 前缀
func readRaw(r *packet.Reader, length int) ([]byte, error) {
	if length >= 0 {
		return r.ReadBytes(length)
	}
	return r.ReadLenencBytes()
}

type nullDecoder struct{}

func (nullDecoder) ReadValue(_ *packet.Reader, _ int, _ bool) (any, error) {
	return nil, nil
}

func (nullDecoder) SkipValue(_ *packet.Reader) error {
	return nil
}

// intDecoder 整数家族，size 是二进制协议里的定长字节数
type intDecoder struct {
	size     int
	unsigned bool
}

func (d intDecoder) ReadValue(r *packet.Reader, length int, isNull bool) (any, error) {
	if isNull {
		return nil, nil
	}
	if length >= 0 {
		raw, err := r.ReadBytes(length)
		if err != nil {
			return nil, err
		}
		if d.unsigned {
			return strconv.ParseUint(string(raw), 10, 64)
		}
		return strconv.ParseInt(string(raw), 10, 64)
	}

	raw, err := r.ReadBytes(d.size)
	if err != nil {
		return nil, err
	}
	var u uint64
	switch d.size {
	case 1:
		u = uint64(raw[0])
	case 2:
		u = uint64(binary.LittleEndian.Uint16(raw))
	case 4:
		u = uint64(binary.LittleEndian.Uint32(raw))
	case 8:
		u = binary.LittleEndian.Uint64(raw)
	}
	if d.unsigned {
		return u, nil
	}
	// 符号扩展
	switch d.size {
	case 1:
		return int64(int8(u)), nil
	case 2:
		return int64(int16(u)), nil
	case 4:
		return int64(int32(u)), nil
	default:
		return int64(u), nil
	}
}

func (d intDecoder) SkipValue(r *packet.Reader) error {
	return r.Skip(d.size)
}

type floatDecoder struct {
	double bool
}

func (d floatDecoder) ReadValue(r *packet.Reader, length int, isNull bool) (any, error) {
	if isNull {
		return nil, nil
	}
	if length >= 0 {
		raw, err := r.ReadBytes(length)
		if err != nil {
			return nil, err
		}
		return strconv.ParseFloat(string(raw), 64)
	}
	if d.double {
		raw, err := r.ReadBytes(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
	}
	raw, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(raw)), nil
}

func (d floatDecoder) SkipValue(r *packet.Reader) error {
	if d.double {
		return r.Skip(8)
	}
	return r.Skip(4)
}

// datetimeDecoder DATE/DATETIME/TIMESTAMP
// 二进制形式是长度前缀加日历字段，长度只可能是 0、4、7、11
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_binary_resultset.html#sect_protocol_binary_resultset_row_value_date
type datetimeDecoder struct{}

func (datetimeDecoder) ReadValue(r *packet.Reader, length int, isNull bool) (any, error) {
	if isNull {
		return nil, nil
	}
	if length >= 0 {
		raw, err := r.ReadBytes(length)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
	n, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch n {
	case 0:
		// 零值日期
		return time.Time{}, nil
	case 4, 7, 11:
		raw, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		year := int(binary.LittleEndian.Uint16(raw[:2]))
		month := time.Month(raw[2])
		day := int(raw[3])
		var hour, minute, sec, micro int
		if n >= 7 {
			hour, minute, sec = int(raw[4]), int(raw[5]), int(raw[6])
		}
		if n == 11 {
			micro = int(binary.LittleEndian.Uint32(raw[7:]))
		}
		return time.Date(year, month, day, hour, minute, sec, micro*1000, time.UTC), nil
	default:
		return nil, fmt.Errorf("%w，非法的日期长度 %d", errs.ErrPktMalformed, n)
	}
}

func (datetimeDecoder) SkipValue(r *packet.Reader) error {
	n, err := r.ReadByte()
	if err != nil {
		return err
	}
	return r.Skip(int(n))
}

// timeDecoder TIME，二进制长度只可能是 0、8、12
type timeDecoder struct{}

func (timeDecoder) ReadValue(r *packet.Reader, length int, isNull bool) (any, error) {
	if isNull {
		return nil, nil
	}
	if length >= 0 {
		raw, err := r.ReadBytes(length)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
	n, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch n {
	case 0:
		return time.Duration(0), nil
	case 8, 12:
		raw, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		days := int64(binary.LittleEndian.Uint32(raw[1:5]))
		d := time.Duration(days*24+int64(raw[5]))*time.Hour +
			time.Duration(raw[6])*time.Minute +
			time.Duration(raw[7])*time.Second
		if n == 12 {
			d += time.Duration(binary.LittleEndian.Uint32(raw[8:])) * time.Microsecond
		}
		// 第一个字节是符号位
		if raw[0] == 1 {
			d = -d
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w，非法的时间长度 %d", errs.ErrPktMalformed, n)
	}
}

func (timeDecoder) SkipValue(r *packet.Reader) error {
	n, err := r.ReadByte()
	if err != nil {
		return err
	}
	return r.Skip(int(n))
}

// bytesDecoder 字符串和一切变长家族的兜底
type bytesDecoder struct {
	// binary 为真时返回 []byte，否则返回 string
	binary bool
}

func (d bytesDecoder) ReadValue(r *packet.Reader, length int, isNull bool) (any, error) {
	if isNull {
		return nil, nil
	}
	raw, err := readRaw(r, length)
	if err != nil {
		return nil, err
	}
	if d.binary {
		// 拷贝一份，载荷缓冲会被下一个报文复用
		return append([]byte{}, raw...), nil
	}
	return string(raw), nil
}

func (d bytesDecoder) SkipValue(r *packet.Reader) error {
	return r.SkipLenencBytes()
}
