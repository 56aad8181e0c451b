package builder

import (
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/encoding"
)

// ChangeUserPacket COM_CHANGE_USER，在同一个连接上重新鉴权。
// 之后服务端会像初始握手一样驱动一轮插件交换
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_change_user.html
type ChangeUserPacket struct {
	ClientFlags flags.CapabilityFlags

	User string

	// AuthResponse 针对原有 seed 重新计算的鉴权响应
	AuthResponse []byte

	Database string

	// int<2>	character_set
	CharacterSet uint16

	AuthPluginName string

	Attrs map[string]string
}

func (b *ChangeUserPacket) Build() []byte {
	p := make([]byte, 4, 64)

	// int<1>	command	0x11: COM_CHANGE_USER
	p = append(p, packet.ComChangeUser.Byte())

	// string<NUL>	user
	p = append(p, encoding.NullTerminatedString(b.User)...)

	if b.ClientFlags.Has(flags.ClientSecureConnection) {
		// int<1> 长度 + auth_plugin_data
		p = append(p, byte(len(b.AuthResponse)))
		p = append(p, b.AuthResponse...)
	} else {
		// string<NUL>	auth_plugin_data
		p = append(p, b.AuthResponse...)
		p = append(p, 0x00)
	}

	// string<NUL>	database
	p = append(p, encoding.NullTerminatedString(b.Database)...)

	// int<2>	character_set
	p = append(p, encoding.FixedLengthInteger(uint64(b.CharacterSet), 2)...)

	if b.ClientFlags.Has(flags.ClientPluginAuth) {
		// string<NUL>	auth_plugin_name
		p = append(p, encoding.NullTerminatedString(b.AuthPluginName)...)
	}

	if b.ClientFlags.Has(flags.ClientConnectAttrs) {
		hs := HandshakeResponse41Packet{Attrs: b.Attrs}
		p = append(p, hs.encodeAttrs()...)
	}
	return p
}
