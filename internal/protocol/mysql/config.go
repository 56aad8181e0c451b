package mysql

import (
	"crypto/tls"
	"time"

	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/connection"
	"github.com/meoying/dbdriver/internal/protocol/mysql/internal/packet"
)

// SSLMode 服务端证书的校验策略
type SSLMode string

const (
	// SSLModeNone 不做 TLS 升级
	SSLModeNone SSLMode = "none"
	// SSLModePreferred 能升级就升级，证书错误全部容忍
	SSLModePreferred SSLMode = "preferred"
	// SSLModeRequired 必须升级，证书错误全部容忍
	SSLModeRequired SSLMode = "required"
	// SSLModeVerifyCA 校验证书链，只容忍主机名不匹配
	SSLModeVerifyCA SSLMode = "verify-ca"
	// SSLModeVerifyFull 完整校验，不容忍任何错误
	SSLModeVerifyFull SSLMode = "verify-full"
)

// CertificateSource 提供客户端证书
// 配了指纹却找不到匹配证书时返回 errs.ErrCertificateNotFound
type CertificateSource interface {
	GetClientCertificates() ([]tls.Certificate, error)
}

// Config 连接配置，连接建立之后只读
type Config struct {
	// Addr host:port
	Addr     string
	User     string
	Password string
	// Database 缺省数据库，配了并且服务端支持才会协商 ClientConnectWithDB
	Database string

	// CharacterSet 握手响应里的字符集编号，0 就用 utf8mb4
	CharacterSet byte

	// ConnectTimeout 建连超时
	ConnectTimeout time.Duration
	// ReadTimeout 单个命令的累计读超时，0 表示不限
	ReadTimeout time.Duration

	// MaxAllowedPacket 逻辑报文上限，0 用默认值
	MaxAllowedPacket int

	SSLMode SSLMode
	// Certificates 客户端证书来源，可以为 nil
	Certificates CertificateSource
	// RootCAs PEM 编码的 CA 证书，verify-ca/verify-full 用
	RootCAs []byte
	// ServerName 证书校验用的主机名，缺省从 Addr 里取
	ServerName string

	// Compress 服务端也支持时启用压缩协议
	Compress bool
	// MultiStatements 允许一次发多条语句
	MultiStatements bool
	// Interactive 按交互式会话计算超时
	Interactive bool
	// FoundRows 返回匹配行数而不是实际修改行数
	FoundRows bool

	// Attrs 额外的连接属性，会并入默认属性一起上报
	Attrs map[string]string
}

func (cfg *Config) characterSet() byte {
	if cfg.CharacterSet == 0 {
		return byte(packet.CharSetUtf8mb4GeneralCi)
	}
	return cfg.CharacterSet
}

func (cfg *Config) maxAllowedPacket() int {
	if cfg.MaxAllowedPacket <= 0 {
		return connection.DefaultMaxAllowedPacket
	}
	return cfg.MaxAllowedPacket
}
