package mysql

import (
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/builder"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/parser"
)

// Statement 服务端预编译语句的句柄
type Statement struct {
	ID uint32
	// Parameters 占位符的元数据，个数就是占位符个数
	Parameters []packet.ColumnDef
	// NumColumns 结果集的列数，0 说明这条语句不产生结果集
	NumColumns int
}

// Prepare 发出 COM_STMT_PREPARE 并读完整个响应。
// 响应里占位符和结果列的元数据各带一个结束符包，要全部消费掉
func (c *Conn) Prepare(sql string) (*Statement, error) {
	if err := c.writeCommand(builder.NewStringCommand(packet.ComStmtPrepare, sql)); err != nil {
		return nil, err
	}
	payload, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 && payload[0] == packet.ErrHeader {
		return nil, c.parseErr(payload)
	}
	var ok parser.StmtPrepareOK
	if err = ok.Parse(payload); err != nil {
		c.fatal(err)
		return nil, err
	}
	c.warnings += uint32(ok.WarningCount)

	stmt := &Statement{ID: ok.StatementID, NumColumns: int(ok.NumColumns)}
	if ok.NumParams > 0 {
		if stmt.Parameters, err = c.ReadColumns(int(ok.NumParams)); err != nil {
			return nil, err
		}
	}
	if ok.NumColumns > 0 {
		// 这里的列定义在执行的时候还会再发一遍，读出来丢掉
		if _, err = c.ReadColumns(int(ok.NumColumns)); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// ExecuteStmt 发出调用方组装好的 COM_STMT_EXECUTE 报文。
// 参数的二进制编码和语句强相关，所以由调用方负责组装，
// 这里只管发出去并标记有结果待读
func (c *Conn) ExecuteStmt(data []byte) error {
	if err := c.writeCommand(data); err != nil {
		return err
	}
	c.status |= flags.ServerStatusAnotherQuery
	return nil
}

// CloseStmt 发出 COM_STMT_CLOSE，服务端对它没有任何响应
func (c *Conn) CloseStmt(statementID uint32) error {
	return c.writeCommand(builder.NewStmtCloseCommand(statementID))
}
