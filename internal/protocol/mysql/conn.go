package mysql

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/meoying/dbdriver/internal/errs"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/auth"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/connection"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/decoder"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/flags"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet/builder"
)

// Conn 代表了到 MySQL 服务端的一个逻辑连接
// 协议是严格的半双工请求/响应，同一时刻只能有一个命令在途，
// 调用方要自己保证对一个连接的访问是串行的
type Conn struct {
	cfg    *Config
	logger *slog.Logger

	transport *connection.Conn
	registry  *auth.Registry
	decoders  decoder.Registry

	// threadId 服务端分配的会话 id，握手完成之前是 -1
	threadId int32
	version  ServerVersion
	// capabilities 握手时协商出来，之后不再变化
	capabilities flags.CapabilityFlags
	// status 每一个 OK/EOF 包都会更新它
	status flags.SeverStatus
	// warnings 每个命令开始时归零，由后续的 OK/EOF 包累加
	warnings uint32
	// seed 鉴权 seed，被插件消费之后就没用了
	seed       []byte
	authPlugin string
	// secure 传输层已经升级成 TLS
	secure bool

	// row 当前数据行，只在 FetchRow 和读值之间有效
	row *packet.Reader
	// nullBitmap 当前二进制协议数据行的 NULL 位图
	nullBitmap packet.NullBitmap
	// rowColumn 行内读到第几个字段了
	rowColumn int

	closed atomic.Bool
}

type Option func(*Conn)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

// WithDecoders 替换默认的标量解码器集合
func WithDecoders(r decoder.Registry) Option {
	return func(c *Conn) {
		c.decoders = r
	}
}

// WithAuthPlugins 替换鉴权插件注册表
func WithAuthPlugins(r *auth.Registry) Option {
	return func(c *Conn) {
		c.registry = r
	}
}

func NewConn(cfg *Config, opts ...Option) *Conn {
	c := &Conn{
		cfg:      cfg,
		logger:   slog.Default(),
		registry: auth.NewRegistry(),
		decoders: decoder.NewRegistry(),
		threadId: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open 建立 TCP 连接并完成握手和鉴权
// 返回错误之后这个 Conn 不可用
func (c *Conn) Open(ctx context.Context) error {
	dialer := net.Dialer{Timeout: c.cfg.ConnectTimeout}
	rawConn, err := dialer.DialContext(ctx, "tcp", c.cfg.Addr)
	if err != nil {
		return fmt.Errorf("%w，建立连接失败 %w", errs.ErrInvalidConn, err)
	}
	c.transport = connection.NewConn(rawConn, c.cfg.maxAllowedPacket())
	if err = c.handshake(); err != nil {
		// 握手失败连接没有任何价值，直接关掉
		_ = c.transport.Close()
		return err
	}
	return nil
}

// ThreadId 服务端分配的会话 id
func (c *Conn) ThreadId() int32 {
	return c.threadId
}

func (c *Conn) ServerVersion() ServerVersion {
	return c.version
}

func (c *Conn) Capabilities() flags.CapabilityFlags {
	return c.capabilities
}

// Status 最近一个 OK/EOF 包带回的服务器状态
func (c *Conn) Status() flags.SeverStatus {
	return c.status
}

// InTransaction 服务端认为当前在事务里
func (c *Conn) InTransaction() bool {
	return c.status.Has(flags.SeverStatusInTrans)
}

// MoreResults 还有没读完的结果集
func (c *Conn) MoreResults() bool {
	return c.status.Has(flags.ServerMoreResultsExists) ||
		c.status.Has(flags.ServerStatusAnotherQuery)
}

func (c *Conn) Warnings() uint32 {
	return c.warnings
}

// Ping 活性检查。任何失败都折叠成 false 并强制关闭连接，
// 它的契约是探活，不是诊断
func (c *Conn) Ping() bool {
	if c.closed.Load() {
		return false
	}
	if err := c.writeCommand(builder.NewSimpleCommand(packet.ComPing)); err != nil {
		c.fatal(err)
		return false
	}
	if _, err := c.readOK(); err != nil {
		c.fatal(err)
		return false
	}
	return true
}

// Close 尽力而为地发 QUIT，然后无条件关闭传输层
// 关闭路径上的错误只记日志，绝不上抛
func (c *Conn) Close(wasOpen bool) {
	if c.closed.Swap(true) {
		return
	}
	var err error
	if wasOpen && c.transport != nil {
		// closed 已经置位，不能走 writeCommand，直接发
		c.transport.ResetSequence()
		if err1 := c.transport.WritePacket(builder.NewSimpleCommand(packet.ComQuit)); err1 != nil {
			err = multierror.Append(err, err1)
		}
	}
	if c.transport != nil {
		if err1 := c.transport.Close(); err1 != nil {
			err = multierror.Append(err, err1)
		}
	}
	if err != nil {
		c.logger.Warn("关闭连接出错", "错误", err)
	}
}

// fatal 标记为致命错误：错误本身照常上抛，
// 但连接作为副作用被强制关闭
func (c *Conn) fatal(err error) {
	c.logger.Error("连接遇到致命错误", "错误", err)
	if !c.closed.Swap(true) && c.transport != nil {
		_ = c.transport.Close()
	}
}

// startCommand 每个命令开始时的公共动作：
// 序号归零、警告数归零、重置累计超时
func (c *Conn) startCommand() error {
	if c.closed.Load() {
		return fmt.Errorf("%w，连接已关闭", errs.ErrInvalidConn)
	}
	c.transport.ResetSequence()
	c.warnings = 0
	c.row = nil
	c.nullBitmap = nil
	return c.transport.ResetTimeout(c.cfg.ReadTimeout)
}
