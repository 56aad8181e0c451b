package mysql

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/builder"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/parser"
)

// defaultAuthPlugin 老服务端不通告插件名时的缺省插件
const defaultAuthPlugin = "mysql_native_password"

// handshake 完整的连接阶段：
// 读初始握手、协商能力、可选的 TLS 升级、发握手响应、跑完鉴权交换。
// 压缩要等鉴权结束之后才真正启用
func (c *Conn) handshake() error {
	if err := c.transport.ResetTimeout(c.cfg.ReadTimeout); err != nil {
		return err
	}
	payload, err := c.transport.ReadPacket()
	if err != nil {
		return err
	}
	var greeting parser.HandshakeV10
	if err = greeting.Parse(payload); err != nil {
		return err
	}

	c.version = parseServerVersion(greeting.ServerVersion)
	if err = checkVersion(c.version); err != nil {
		return err
	}
	c.threadId = int32(greeting.ThreadID)
	c.status = greeting.StatusFlags
	c.seed = greeting.AuthPluginData
	c.authPlugin = greeting.AuthPluginName
	if c.authPlugin == "" {
		c.authPlugin = defaultAuthPlugin
	}

	if err = c.negotiate(greeting.ServerCapabilities); err != nil {
		return err
	}

	resp := builder.HandshakeResponse41Packet{
		ClientFlags:    c.capabilities,
		MaxPacketSize:  uint32(c.cfg.maxAllowedPacket()),
		CharacterSet:   c.cfg.characterSet(),
		User:           c.cfg.User,
		Database:       c.cfg.Database,
		AuthPluginName: c.authPlugin,
		Attrs:          c.connectAttrs(),
	}

	secure := false
	if c.capabilities.Has(flags.ClientSSL) {
		// 先发只有头部的升级请求，再在同一条连接上做 TLS 握手
		if err = c.transport.WritePacket(resp.BuildSSLRequest()); err != nil {
			return err
		}
		tlsCfg, err := c.buildTLSConfig()
		if err != nil {
			return err
		}
		if err = c.transport.UpgradeTLS(tlsCfg); err != nil {
			return err
		}
		// 握手包用掉了 0，升级请求用掉了 1，升级后从 2 继续
		c.transport.SetSequence(2)
		secure = true
	}
	c.secure = secure

	ex := c.exchange(secure)
	plugin, err := c.registry.Lookup(c.authPlugin)
	if err != nil {
		return err
	}
	if resp.AuthResponse, err = plugin.InitialResponse(ex); err != nil {
		return err
	}
	if err = c.transport.WritePacket(resp.Build()); err != nil {
		return err
	}
	if err = c.authLoop(plugin, ex); err != nil {
		return err
	}

	if c.capabilities.Has(flags.ClientCompress) {
		c.transport.EnableCompression()
	}
	return nil
}

// negotiate 按固定的策略表算出客户端想要的 flags，
// 再和服务端通告的取交集
func (c *Conn) negotiate(server flags.CapabilityFlags) error {
	if c.cfg.SSLMode != SSLModeNone && c.cfg.SSLMode != SSLModePreferred &&
		!server.Has(flags.ClientSSL) {
		return fmt.Errorf("%w，服务端没有通告 SSL 能力", errs.ErrSSLRequired)
	}

	var want flags.CapabilityFlags
	want = want.
		Add(flags.ClientLongPassword).
		Add(flags.ClientLocalFiles).
		Add(flags.ClientProtocol41).
		Add(flags.ClientTransactions).
		Add(flags.ClientMultiResults).
		// 下面这些只在服务端也有的时候才有意义，交集会把多余的裁掉
		Add(flags.ClientLongFlag).
		Add(flags.ClientSecureConnection).
		Add(flags.ClientPSMultiResults).
		Add(flags.ClientPluginAuth).
		Add(flags.ClientConnectAttrs).
		Add(flags.ClientCanHandleExpiredPasswords)
	if c.cfg.FoundRows {
		want = want.Add(flags.ClientFoundRows)
	}
	if c.cfg.MultiStatements {
		want = want.Add(flags.ClientMultiStatements)
	}
	if c.cfg.Interactive {
		want = want.Add(flags.ClientInteractive)
	}
	if c.cfg.Compress {
		want = want.Add(flags.ClientCompress)
	}
	if c.cfg.Database != "" {
		want = want.Add(flags.ClientConnectWithDB)
	}
	if c.cfg.SSLMode != SSLModeNone {
		want = want.Add(flags.ClientSSL)
	}

	c.capabilities = want & server
	return nil
}

// connectAttrs 默认属性并入用户配置的属性，同名时用户的优先
func (c *Conn) connectAttrs() map[string]string {
	attrs := map[string]string{
		"_client_name": "dbdriver",
		"_os":          runtime.GOOS,
		"_platform":    runtime.GOARCH,
		"_pid":         strconv.Itoa(os.Getpid()),
	}
	for k, v := range c.cfg.Attrs {
		attrs[k] = v
	}
	return attrs
}
