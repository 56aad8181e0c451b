package builder

import (
	"encoding/binary"

	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// 命令包都很简单：一个命令字节加可选的参数。
// 头部四个字节照例保留给传输层填充

// NewSimpleCommand 构造不带参数的命令，例如 COM_PING、COM_QUIT
func NewSimpleCommand(cmd packet.Command) []byte {
	p := make([]byte, 4, 5)
	return append(p, cmd.Byte())
}

// NewStringCommand 构造参数是 string<EOF> 的命令，
// 例如 COM_QUERY、COM_INIT_DB、COM_STMT_PREPARE
func NewStringCommand(cmd packet.Command, arg string) []byte {
	p := make([]byte, 4, 5+len(arg))
	p = append(p, cmd.Byte())
	return append(p, arg...)
}

// NewStmtCloseCommand 构造 COM_STMT_CLOSE，服务端不会响应它
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_close.html
func NewStmtCloseCommand(statementID uint32) []byte {
	p := make([]byte, 4, 9)
	p = append(p, packet.ComStmtClose.Byte())
	return binary.LittleEndian.AppendUint32(p, statementID)
}
