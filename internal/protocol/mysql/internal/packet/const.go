package packet

// 字符编码类型
const (
	CharSetUtf8mb4GeneralCi uint32 = 45
	CharSetBinary           uint32 = 63
)

const (
	// MaxPacketSize 单一报文最大长度
	// 超过这个长度的逻辑报文要拆成多个物理报文发送
	MaxPacketSize      = 1<<24 - 1
	MinProtocolVersion = 10
)

// 报文载荷的第一个字节，标记这是一个什么响应
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_response_packets.html
const (
	OKHeader byte = 0x00
	// ErrHeader 错误响应
	ErrHeader byte = 0xFF
	// EOFHeader 既是 EOF 包的标记，也是 int<lenenc> 的 8 字节形式前缀，
	// 还是鉴权阶段 AuthSwitchRequest 的标记，要结合载荷长度区分
	EOFHeader byte = 0xFE
	// NullValue 在长度语境下 0xFB 代表 NULL，
	// 在结果集头部语境下代表服务端请求读取本地文件
	NullValue byte = 0xFB
	// MoreDataHeader 鉴权插件要求继续交换数据
	MoreDataHeader byte = 0x01
)

// Command 客户端发给服务端的命令字节
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_command_phase.html
type Command byte

func (c Command) Byte() byte {
	return byte(c)
}

const (
	ComQuit        Command = 0x01
	ComInitDB      Command = 0x02
	ComQuery       Command = 0x03
	ComPing        Command = 0x0E
	ComChangeUser  Command = 0x11
	ComStmtPrepare Command = 0x16
	ComStmtExecute Command = 0x17
	ComStmtClose   Command = 0x19
	ComStmtFetch   Command = 0x1C
)

// LocalInfileChunkSize LOAD DATA LOCAL INFILE 按这个大小分块上传文件
const LocalInfileChunkSize = 8192
