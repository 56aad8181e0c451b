package parser

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// OKPacket 服务端的 OK 响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_ok_packet.html
type OKPacket struct {
	// Capabilities 影响尾部字段的解析
	Capabilities flags.CapabilityFlags

	// int<lenenc>	affected_rows
	AffectedRows uint64

	// int<lenenc>	last_insert_id
	LastInsertID uint64

	// int<2>	status_flags	SERVER_STATUS_flags_enum
	StatusFlags flags.SeverStatus

	// int<2>	warnings	仅 ClientProtocol41
	Warnings uint16

	// string<EOF>	info	人类可读的附加信息
	Info string
}

func (p *OKPacket) Parse(payload []byte) error {
	r := packet.NewReader(payload)
	header, err := r.ReadByte()
	if err != nil {
		return err
	}
	if header != packet.OKHeader {
		return fmt.Errorf("%w，预期 OK 包，首字节 %d", errs.ErrPktMalformed, header)
	}

	if p.AffectedRows, _, err = r.ReadLenencInt(); err != nil {
		return err
	}
	if p.LastInsertID, _, err = r.ReadLenencInt(); err != nil {
		return err
	}

	if p.Capabilities.Has(flags.ClientProtocol41) {
		status, err := r.ReadUint16()
		if err != nil {
			return err
		}
		p.StatusFlags = flags.SeverStatus(status)
		if p.Warnings, err = r.ReadUint16(); err != nil {
			return err
		}
	} else if p.Capabilities.Has(flags.ClientTransactions) {
		status, err := r.ReadUint16()
		if err != nil {
			return err
		}
		p.StatusFlags = flags.SeverStatus(status)
	}

	if r.More() {
		p.Info = string(r.ReadRestOfPacketString())
	}
	return nil
}
