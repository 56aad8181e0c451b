package parser

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// IsEOFPacket 判断载荷是不是结束符包。
// 0xFE 同时也是 int<lenenc> 的 8 字节前缀，所以还要结合长度判断：
// 结束符包的载荷必然小于 9 个字节。
// 注意：一个恰好以 0xFE 开头且长度小于 9 的数据行会被误判，
// 这是线上协议本身的歧义，为了保持兼容我们不做“修复”
func IsEOFPacket(payload []byte) bool {
	return len(payload) > 0 && payload[0] == packet.EOFHeader && len(payload) < 9
}

// EOFPacket 结束符包，结果集里列定义和数据行都以它收尾
// 尾部携带警告数和最新的服务器状态
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_eof_packet.html
type EOFPacket struct {
	Capabilities flags.CapabilityFlags

	// int<2>	warnings	仅 ClientProtocol41
	Warnings uint16

	// int<2>	status_flags	仅 ClientProtocol41
	StatusFlags flags.SeverStatus
}

func (p *EOFPacket) Parse(payload []byte) error {
	if !IsEOFPacket(payload) {
		return fmt.Errorf("%w，预期结束符包，首字节 %d，长度 %d",
			errs.ErrPktMalformed, packet.NewReader(payload).Header(), len(payload))
	}
	r := packet.NewReader(payload)
	// int<1>	header	0xFE
	if err := r.Skip(1); err != nil {
		return err
	}
	if p.Capabilities.Has(flags.ClientProtocol41) {
		warnings, err := r.ReadUint16()
		if err != nil {
			return err
		}
		p.Warnings = warnings
		status, err := r.ReadUint16()
		if err != nil {
			return err
		}
		p.StatusFlags = flags.SeverStatus(status)
	}
	return nil
}
