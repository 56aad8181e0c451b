package decoder

import (
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

//go:generate mockgen -source=./decoder.go -destination=mocks/decoder.mock.go -package=decodermocks

// Decoder 负责真正的标量解码。协议层只管游标和 NULL 位图，
// 字节怎么变成值是它的事
type Decoder interface {
	// ReadValue 从 r 的当前游标读出一个值。
	// length >= 0 是文本协议里显式给出的字节数；
	// length == -1 表示长度由类型自己决定（二进制协议）。
	// isNull 为真时不得推进游标，直接返回 nil
	ReadValue(r *packet.Reader, length int, isNull bool) (any, error)

	// SkipValue 跳过一个二进制协议的值，
	// 游标推进的距离必须和 ReadValue 一致
	SkipValue(r *packet.Reader) error
}

// Registry 按服务端类型码和字段属性挑选解码器
type Registry interface {
	Lookup(tp packet.MySQLType, colFlags packet.FieldFlag) (Decoder, error)
}
