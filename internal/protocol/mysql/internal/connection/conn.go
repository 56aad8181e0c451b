package connection

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/multierr"

	"github.com/meoying/dbdriver/internal/errs"
)

// Conn 是客户端这一侧的报文传输层
// 它只负责把字节流切成带长度和序号的报文，
// 拆包、压缩、TLS 升级都在这一层处理，
// 上层拿到的 ReadPacket/WritePacket 是原子的逻辑操作
//
// 一个连接同一时刻只有一个命令在途，调用方自己保证串行
type Conn struct {
	// conn 当前的字节流，TLS 升级之后会换成 *tls.Conn
	conn net.Conn
	// stream 报文实际读写的流：没开压缩就是 conn，开了就是 compressor
	stream io.ReadWriter

	// maxAllowedPacket 重组后逻辑报文的上限，超过按 ErrPktTooLarge 处理
	maxAllowedPacket int
	// 写入超时时间
	writeTimeout time.Duration
	sequence     uint8

	compress *compressor
}

func NewConn(rc net.Conn, maxAllowedPacket int) *Conn {
	mc := &Conn{
		conn:             rc,
		maxAllowedPacket: maxAllowedPacket,
		writeTimeout:     time.Second * 3,
	}
	mc.stream = mc.conn
	return mc
}

// ResetSequence 每个命令开始时归零，
// 插件鉴权、change user 这类边界也会归零
func (mc *Conn) ResetSequence() {
	mc.sequence = 0
	if mc.compress != nil {
		mc.compress.resetSequence()
	}
}

// SetSequence TLS 升级之后序号要接着升级请求往下数
func (mc *Conn) SetSequence(seq uint8) {
	mc.sequence = seq
}

// Sequence 下一个报文预期的序号
func (mc *Conn) Sequence() uint8 {
	return mc.sequence
}

// ResetTimeout 设置本次命令的累计读写截止时间
// 超时会以 errs.ErrTimeout 上抛，并且不会动连接上已有的状态
func (mc *Conn) ResetTimeout(d time.Duration) error {
	if d <= 0 {
		return mc.conn.SetDeadline(time.Time{})
	}
	return mc.conn.SetDeadline(time.Now().Add(d))
}

// UpgradeTLS 原地把传输层升级成加密通道，复用同一个底层连接
// 必须在发送凭证之前、启用压缩之前调用
func (mc *Conn) UpgradeTLS(cfg *tls.Config) error {
	tlsConn := tls.Client(mc.conn, cfg)
	if err := tlsConn.Handshake(); err != nil {
		return fmt.Errorf("%w，TLS 握手失败 %w", errs.ErrInvalidConn, err)
	}
	mc.conn = tlsConn
	mc.stream = tlsConn
	return nil
}

// EnableCompression 鉴权完成之后再调用
// 后续每个报文都包在压缩帧里传输
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_compression.html
func (mc *Conn) EnableCompression() {
	mc.compress = newCompressor(mc.conn)
	mc.stream = mc.compress
}

func (mc *Conn) Close() error {
	// 先清掉 deadline，避免关闭动作本身被已经过期的 deadline 拦下
	err := mc.conn.SetDeadline(time.Time{})
	return multierr.Append(err, mc.conn.Close())
}

// wrapIOErr 把底层 I/O 错误归类：超时单独归一类，
// 其余都意味着连接不可再用
func wrapIOErr(op string, err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%w，%s超时 %w", errs.ErrTimeout, op, err)
	}
	return fmt.Errorf("%w，%s失败 %w", errs.ErrInvalidConn, op, err)
}

// DefaultMaxAllowedPacket 默认的逻辑报文上限
// 正常来说会被配置里的 maxAllowedPacket 覆盖
const DefaultMaxAllowedPacket = 64 << 20
