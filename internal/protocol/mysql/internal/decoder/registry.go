package decoder

import (
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// MapRegistry 内置的解码器集合
// 不认识的类型退回到按 string<lenenc> 处理，
// 这也是 MySQL 对一切文本派生类型的兜底表示
type MapRegistry struct{}

func NewRegistry() *MapRegistry {
	return &MapRegistry{}
}

func (r *MapRegistry) Lookup(tp packet.MySQLType, colFlags packet.FieldFlag) (Decoder, error) {
	unsigned := colFlags.Has(packet.FieldFlagUnsigned)
	switch tp {
	case packet.MySQLTypeNULL:
		return nullDecoder{}, nil
	case packet.MySQLTypeTiny:
		return intDecoder{size: 1, unsigned: unsigned}, nil
	case packet.MySQLTypeShort, packet.MySQLTypeYear:
		return intDecoder{size: 2, unsigned: unsigned}, nil
	case packet.MySQLTypeLong, packet.MySQLTypeInt24:
		return intDecoder{size: 4, unsigned: unsigned}, nil
	case packet.MySQLTypeLongLong:
		return intDecoder{size: 8, unsigned: unsigned}, nil
	case packet.MySQLTypeFloat:
		return floatDecoder{double: false}, nil
	case packet.MySQLTypeDouble:
		return floatDecoder{double: true}, nil
	case packet.MySQLTypeDate, packet.MySQLTypeNewDate,
		packet.MySQLTypeDatetime, packet.MySQLTypeTimestamp:
		return datetimeDecoder{}, nil
	case packet.MySQLTypeTime:
		return timeDecoder{}, nil
	default:
		// DECIMAL、BIT、JSON、BLOB、字符串家族都是 string<lenenc>
		return bytesDecoder{binary: colFlags.Has(packet.FieldFlagBinary)}, nil
	}
}
