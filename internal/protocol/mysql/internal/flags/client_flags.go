package flags

// CapabilityFlags 是握手阶段协商出来的功能特性集合
// 客户端把自己想要的 flags 和服务端通告的 flags 取交集，
// 之后整个连接的生命周期内不再变化
// https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__capabilities__flags.html
type CapabilityFlags uint64

func (flags CapabilityFlags) Has(flag CapabilityFlag) bool {
	return uint64(flags)&uint64(flag) > 0
}

// Add 返回新的集合，不修改原集合
func (flags CapabilityFlags) Add(flag CapabilityFlag) CapabilityFlags {
	return flags | CapabilityFlags(flag)
}

// AsUint32 握手响应里只传输低 32 位
func (flags CapabilityFlags) AsUint32() uint32 {
	return uint32(flags)
}

// CapabilityFlag
// 这里我们按需定义，只把用到了的添加到这里
type CapabilityFlag uint64

const (
	ClientLongPassword               CapabilityFlag = 1 << 0
	ClientFoundRows                  CapabilityFlag = 1 << 1
	ClientLongFlag                   CapabilityFlag = 1 << 2
	ClientConnectWithDB              CapabilityFlag = 1 << 3
	ClientCompress                   CapabilityFlag = 1 << 5
	ClientLocalFiles                 CapabilityFlag = 1 << 7
	ClientProtocol41                 CapabilityFlag = 1 << 9
	ClientInteractive                CapabilityFlag = 1 << 10
	ClientSSL                        CapabilityFlag = 1 << 11
	ClientTransactions               CapabilityFlag = 1 << 13
	ClientSecureConnection           CapabilityFlag = 1 << 15
	ClientMultiStatements            CapabilityFlag = 1 << 16
	ClientMultiResults               CapabilityFlag = 1 << 17
	ClientPSMultiResults             CapabilityFlag = 1 << 18
	ClientPluginAuth                 CapabilityFlag = 1 << 19
	ClientConnectAttrs               CapabilityFlag = 1 << 20
	ClientPluginAuthLenencClientData CapabilityFlag = 1 << 21
	ClientCanHandleExpiredPasswords  CapabilityFlag = 1 << 22
	ClientQueryAttributes            CapabilityFlag = 1 << 27
)
