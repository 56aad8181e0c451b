package parser

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// ErrPacket 服务端的错误响应。它本身实现了 error
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_err_packet.html
type ErrPacket struct {
	// int<2>	error_code
	Code uint16

	// string[5]	sql_state	前面带一个固定的 # 分隔符
	State string

	// string<EOF>	error_message
	Message string
}

func (p *ErrPacket) Parse(payload []byte) error {
	r := packet.NewReader(payload)
	header, err := r.ReadByte()
	if err != nil {
		return err
	}
	if header != packet.ErrHeader {
		return fmt.Errorf("%w，预期错误包，首字节 %d", errs.ErrPktMalformed, header)
	}
	if p.Code, err = r.ReadUint16(); err != nil {
		return err
	}
	// 我们必然协商 ClientProtocol41，所以有固定的 # 分隔符和 state 字段。
	// 个别代理实现不带 #，这时整段都是 message
	marker, err := r.ReadByte()
	if err != nil {
		return err
	}
	if marker == '#' {
		state, err := r.ReadBytes(5)
		if err != nil {
			return err
		}
		p.State = string(state)
		p.Message = string(r.ReadRestOfPacketString())
	} else {
		p.Message = string(marker) + string(r.ReadRestOfPacketString())
	}
	return nil
}

func (p *ErrPacket) Error() string {
	return fmt.Sprintf("Error %d (%s): %s", p.Code, p.State, p.Message)
}
