package parser

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// HandshakeV10 服务端发来的初始握手包
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_v10.html
type HandshakeV10 struct {
	// int<1>	protocol version	Always 10
	ProtocolVersion byte

	// string<NUL>	server version	human readable status information
	ServerVersion string

	// int<4>	thread id	a.k.a. connection id
	ThreadID uint32

	// AuthPluginData 是 auth-plugin-data-part-1 和 part-2 拼接出来的完整 seed，
	// 鉴权插件用一次之后就可以丢弃
	AuthPluginData []byte

	// ServerCapabilities 低 16 位和高 16 位分两处传输，这里已经合并
	ServerCapabilities flags.CapabilityFlags

	// int<1>	character_set	default server a_protocol_character_set
	CharacterSet byte

	// int<2>	status_flags	SERVER_STATUS_flags_enum
	StatusFlags flags.SeverStatus

	// string<NUL>	auth_plugin_name	仅当 ClientPluginAuth 时存在，
	// 否则调用方退回到 mysql_native_password
	AuthPluginName string
}

func (h *HandshakeV10) Parse(payload []byte) error {
	r := packet.NewReader(payload)

	version, err := r.ReadByte()
	if err != nil {
		return err
	}
	h.ProtocolVersion = version
	if version < packet.MinProtocolVersion {
		return fmt.Errorf("%w，协议版本 %d", errs.ErrUnsupportedServer, version)
	}

	if h.ServerVersion, err = r.ReadNulString(); err != nil {
		return err
	}

	if h.ThreadID, err = r.ReadUint32(); err != nil {
		return err
	}

	// string[8]	auth-plugin-data-part-1
	seed1, err := r.ReadBytes(8)
	if err != nil {
		return err
	}

	// int<1>	filler	0x00
	if err = r.Skip(1); err != nil {
		return err
	}

	// int<2>	capability_flags_1	低 16 位
	capLow, err := r.ReadUint16()
	if err != nil {
		return err
	}
	h.ServerCapabilities = flags.CapabilityFlags(capLow)

	// 老版本的服务端到这里就结束了
	if !r.More() {
		h.AuthPluginData = append([]byte{}, seed1...)
		return nil
	}

	if h.CharacterSet, err = r.ReadByte(); err != nil {
		return err
	}

	status, err := r.ReadUint16()
	if err != nil {
		return err
	}
	h.StatusFlags = flags.SeverStatus(status)

	// int<2>	capability_flags_2	高 16 位，OR 进低 16 位
	capHigh, err := r.ReadUint16()
	if err != nil {
		return err
	}
	h.ServerCapabilities |= flags.CapabilityFlags(capHigh) << 16

	// int<1>	auth_plugin_data_len
	authDataLen, err := r.ReadByte()
	if err != nil {
		return err
	}

	// string[10]	reserved	All 0s
	if err = r.Skip(10); err != nil {
		return err
	}

	// auth-plugin-data-part-2，$len=MAX(13, auth_plugin_data_len - 8)
	// 最后一个 0x00 是结束符，不属于 seed
	seed2Len := 13
	if int(authDataLen)-8 > 13 {
		seed2Len = int(authDataLen) - 8
	}
	seed2, err := r.ReadBytes(seed2Len)
	if err != nil {
		return err
	}
	if seed2[len(seed2)-1] == 0x00 {
		seed2 = seed2[:len(seed2)-1]
	}
	h.AuthPluginData = append(append([]byte{}, seed1...), seed2...)

	if h.ServerCapabilities.Has(flags.ClientPluginAuth) {
		// 有些服务端没有用 0x00 结尾，所以这里兜底读到载荷末尾
		if h.AuthPluginName, err = r.ReadNulString(); err != nil {
			h.AuthPluginName = string(r.ReadRestOfPacketString())
		}
	}
	return nil
}
