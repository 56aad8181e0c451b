package parser

import (
	"fmt"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// StmtPrepareOK COM_STMT_PREPARE 的成功响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_prepare.html#sect_protocol_com_stmt_prepare_response_ok
type StmtPrepareOK struct {
	// int<1>	status	必须是 0x00
	Status byte

	// int<4>	statement_id
	StatementID uint32

	// int<2>	num_columns
	NumColumns uint16

	// int<2>	num_params
	NumParams uint16

	// int<2>	warning_count	载荷长度大于 12 时才有
	WarningCount uint16
}

func (p *StmtPrepareOK) Parse(payload []byte) error {
	r := packet.NewReader(payload)
	status, err := r.ReadByte()
	if err != nil {
		return err
	}
	if status != 0x00 {
		return fmt.Errorf("%w，预期 COM_STMT_PREPARE_OK，首字节 %d", errs.ErrPktMalformed, status)
	}
	p.Status = status
	if p.StatementID, err = r.ReadUint32(); err != nil {
		return err
	}
	if p.NumColumns, err = r.ReadUint16(); err != nil {
		return err
	}
	if p.NumParams, err = r.ReadUint16(); err != nil {
		return err
	}
	// int<1>	reserved_1	[00] filler
	if err = r.Skip(1); err != nil {
		return err
	}
	if r.Len() >= 2 {
		if p.WarningCount, err = r.ReadUint16(); err != nil {
			return err
		}
	}
	return nil
}
