package parser

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// AuthSwitchRequest 服务端在鉴权阶段要求换用别的插件
// 标记字节和 EOF 一样是 0xFE，但出现在鉴权语境下且载荷更长
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_auth_switch_request.html
type AuthSwitchRequest struct {
	// string<NUL>	plugin name
	PluginName string

	// string<EOF>	plugin provided data	新的 seed
	PluginData []byte
}

func (p *AuthSwitchRequest) Parse(payload []byte) error {
	r := packet.NewReader(payload)
	header, err := r.ReadByte()
	if err != nil {
		return err
	}
	if header != packet.EOFHeader {
		return fmt.Errorf("%w，预期 AuthSwitchRequest，首字节 %d", errs.ErrPktMalformed, header)
	}
	if p.PluginName, err = r.ReadNulString(); err != nil {
		return err
	}
	data := r.ReadRestOfPacketString()
	// 末尾的 0x00 是结束符，不属于 seed
	if len(data) > 0 && data[len(data)-1] == 0x00 {
		data = data[:len(data)-1]
	}
	p.PluginData = data
	return nil
}

// AuthMoreData 鉴权插件的后续挑战数据，标记字节 0x01
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_auth_more_data.html
type AuthMoreData struct {
	Data []byte
}

func (p *AuthMoreData) Parse(payload []byte) error {
	r := packet.NewReader(payload)
	header, err := r.ReadByte()
	if err != nil {
		return err
	}
	if header != packet.MoreDataHeader {
		return fmt.Errorf("%w，预期 AuthMoreData，首字节 %d", errs.ErrPktMalformed, header)
	}
	p.Data = r.ReadRestOfPacketString()
	return nil
}
