//go:build e2e

package e2e

import (
	"encoding/binary"
	"time"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"
)

// stmtExecutePayload 组装一个带单个 BIGINT 参数的 COM_STMT_EXECUTE
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_execute.html
func stmtExecutePayload(id uint32, arg int64) []byte {
	p := make([]byte, 4, 4+25)
	// int<1>	command	0x17
	p = append(p, 0x17)
	// int<4>	statement id
	p = append(p, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	// int<1>	flags	CURSOR_TYPE_NO_CURSOR
	p = append(p, 0x00)
	// int<4>	iteration count	恒为 1
	p = append(p, 0x01, 0x00, 0x00, 0x00)
	// NULL 位图，一个参数占一个字节
	p = append(p, 0x00)
	// int<1>	new params bound flag
	p = append(p, 0x01)
	// 参数类型 MYSQL_TYPE_LONGLONG，有符号
	p = append(p, 0x08, 0x00)
	var v [8]byte
	binary.LittleEndian.PutUint64(v[:], uint64(arg))
	return append(p, v[:]...)
}

// 预编译语句走二进制协议，整数和日期不再是字符串字面值
func (s *ClientTestSuite) TestPrepareExecute() {
	c := s.newConn()
	stmt, err := c.Prepare(
		"SELECT type_int, type_varchar, type_datetime FROM test_scalar WHERE id = ?")
	require.NoError(s.T(), err)
	require.Len(s.T(), stmt.Parameters, 1)
	require.Equal(s.T(), 3, stmt.NumColumns)

	require.NoError(s.T(), c.ExecuteStmt(stmtExecutePayload(stmt.ID, 1)))
	rows := s.readRows(c, stmt.ID)
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), rows[0][0], int64(-2147483648))
	assert.Equal(s.T(), rows[0][1], "hello")
	assert.Equal(s.T(), rows[0][2],
		time.Date(2024, 6, 1, 12, 34, 56, 500000*1000, time.UTC))

	// 同一个句柄可以反复执行
	require.NoError(s.T(), c.ExecuteStmt(stmtExecutePayload(stmt.ID, 2)))
	rows = s.readRows(c, stmt.ID)
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), rows[0], []any{nil, nil, nil})

	require.NoError(s.T(), c.CloseStmt(stmt.ID))
	// COM_STMT_CLOSE 没有响应，连接还活着
	require.True(s.T(), c.Ping())
}

func (s *ClientTestSuite) TestPrepareSyntaxError() {
	c := s.newConn()
	_, err := c.Prepare("SELEC 1")
	require.Error(s.T(), err)
	require.True(s.T(), c.Ping())
}
