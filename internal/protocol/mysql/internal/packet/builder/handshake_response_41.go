package builder

import (
	"encoding/binary"

	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/encoding"
)

// HandshakeResponse41Packet 客户端对初始握手的响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_response.html#sect_protocol_connection_phase_packets_protocol_handshake_response41
//
// 响应分成两段：
// 头部（flags、max packet size、charset、23 个保留字节）在 SSL 升级前就要先发一次，
// 凭证部分要等传输层升级完成之后再随完整响应发出
type HandshakeResponse41Packet struct {
	// int<4>	client_flag	协商出来的能力集合
	ClientFlags flags.CapabilityFlags

	// int<4>	max_packet_size	客户端允许的最大报文
	MaxPacketSize uint32

	// int<1>	character_set
	CharacterSet byte

	User string

	// AuthResponse 鉴权插件算出来的首个响应
	AuthResponse []byte

	// Database 仅当协商了 ClientConnectWithDB
	Database string

	// AuthPluginName 仅当协商了 ClientPluginAuth
	AuthPluginName string

	// Attrs 仅当协商了 ClientConnectAttrs。
	// 编码为一串 string<lenenc> 的键值对，键值都假定短于 256 字节
	Attrs map[string]string
}

// BuildSSLRequest 构造 SSL 升级请求，
// 也就是只有头部没有凭证的握手响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_ssl_request.html
func (b *HandshakeResponse41Packet) BuildSSLRequest() []byte {
	p := make([]byte, 4, 4+32)
	return b.appendHeader(p)
}

// Build 构造完整的握手响应
func (b *HandshakeResponse41Packet) Build() []byte {
	p := make([]byte, 4, 128)
	p = b.appendHeader(p)

	// string<NUL>	username
	p = append(p, encoding.NullTerminatedString(b.User)...)

	// 鉴权响应，按能力选择编码方式
	if b.ClientFlags.Has(flags.ClientPluginAuthLenencClientData) {
		// string<lenenc>	auth_response
		p = append(p, encoding.LengthEncodeInteger(uint64(len(b.AuthResponse)))...)
		p = append(p, b.AuthResponse...)
	} else if b.ClientFlags.Has(flags.ClientSecureConnection) {
		// int<1> 长度 + auth_response
		p = append(p, byte(len(b.AuthResponse)))
		p = append(p, b.AuthResponse...)
	} else {
		// string<NUL>	auth_response
		p = append(p, b.AuthResponse...)
		p = append(p, 0x00)
	}

	if b.ClientFlags.Has(flags.ClientConnectWithDB) {
		// string<NUL>	database
		p = append(p, encoding.NullTerminatedString(b.Database)...)
	}

	if b.ClientFlags.Has(flags.ClientPluginAuth) {
		// string<NUL>	client_plugin_name
		p = append(p, encoding.NullTerminatedString(b.AuthPluginName)...)
	}

	if b.ClientFlags.Has(flags.ClientConnectAttrs) {
		p = append(p, b.encodeAttrs()...)
	}
	return p
}

// appendHeader 写入头部：flags、max packet size、charset 和 23 个保留的 0
func (b *HandshakeResponse41Packet) appendHeader(p []byte) []byte {
	// int<4>	client_flag
	p = binary.LittleEndian.AppendUint32(p, b.ClientFlags.AsUint32())

	// int<4>	max_packet_size
	p = binary.LittleEndian.AppendUint32(p, b.MaxPacketSize)

	// int<1>	character_set
	p = append(p, b.CharacterSet)

	// string[23]	filler	全 0
	p = append(p, make([]byte, 23)...)
	return p
}

// encodeAttrs 编码连接属性：整体长度的 int<lenenc> 前缀，
// 后面跟一串 string<lenenc> 键值对
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_response.html
func (b *HandshakeResponse41Packet) encodeAttrs() []byte {
	var kv []byte
	for k, v := range b.Attrs {
		kv = append(kv, encoding.LengthEncodeString(k)...)
		kv = append(kv, encoding.LengthEncodeString(v)...)
	}
	return append(encoding.LengthEncodeInteger(uint64(len(kv))), kv...)
}
