package parser

import (
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// ColumnDefinition41 解析字段描述包
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_column_definition.html
type ColumnDefinition41 struct {
	// Capabilities 决定 flags 字段是一个字节还是两个字节
	Capabilities flags.CapabilityFlags

	Column packet.ColumnDef
}

func (p *ColumnDefinition41) Parse(payload []byte) error {
	r := packet.NewReader(payload)
	var err error

	// catalog string<lenenc>	目录，总是 "def"
	if p.Column.Catalog, err = r.ReadLenencString(); err != nil {
		return err
	}
	// schema string<lenenc>	数据库
	if p.Column.Schema, err = r.ReadLenencString(); err != nil {
		return err
	}
	// table string<lenenc>	虚拟数据表名
	if p.Column.Table, err = r.ReadLenencString(); err != nil {
		return err
	}
	// org_table string<lenenc>	物理数据表名
	if p.Column.OrgTable, err = r.ReadLenencString(); err != nil {
		return err
	}
	// name string<lenenc>	虚拟字段名
	if p.Column.Name, err = r.ReadLenencString(); err != nil {
		return err
	}
	// org_name string<lenenc>	物理字段名
	if p.Column.OrgName, err = r.ReadLenencString(); err != nil {
		return err
	}

	// int<lenenc>	length of fixed length fields	固定是 0x0c
	if _, _, err = r.ReadLenencInt(); err != nil {
		return err
	}

	// int<2>	character_set
	if p.Column.CharacterSet, err = r.ReadUint16(); err != nil {
		return err
	}
	// int<4>	column_length
	if p.Column.ColumnLength, err = r.ReadUint32(); err != nil {
		return err
	}
	// int<1>	type
	tp, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.Column.Type = packet.MySQLType(tp)

	// flags 协商了 ClientLongFlag 就是两个字节，否则一个字节
	if p.Capabilities.Has(flags.ClientLongFlag) {
		fieldFlags, err := r.ReadUint16()
		if err != nil {
			return err
		}
		p.Column.Flags = packet.FieldFlag(fieldFlags)
	} else {
		fieldFlags, err := r.ReadByte()
		if err != nil {
			return err
		}
		p.Column.Flags = packet.FieldFlag(fieldFlags)
	}

	// int<1>	decimals	小数位数
	if p.Column.Decimals, err = r.ReadByte(); err != nil {
		return err
	}
	return nil
}
