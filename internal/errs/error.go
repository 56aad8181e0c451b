package errs

import (
	"errors"
)

// 传输层错误。
// 凡是 ErrInvalidConn、ErrPktSync、ErrPktMalformed 这一类错误，
// 连接都已经不可信了，调用方应该直接关闭连接
var (
	ErrInvalidConn  = errors.New("异常连接")
	ErrPktSync      = errors.New("报文乱序")
	ErrPktTooLarge  = errors.New("报文过大")
	ErrPktMalformed = errors.New("报文格式非法")

	// ErrTimeout 累计读写超时。注意它不会修改连接上已有的状态，
	// 调用方可以在不假设协议状态一致的前提下放弃并关闭连接
	ErrTimeout = errors.New("读写超时")
)

// 握手与鉴权阶段的错误
var (
	ErrUnsupportedServer     = errors.New("服务端版本过低")
	ErrUnsupportedAuthMethod = errors.New("不支持的鉴权方式")
	ErrCertificateNotFound   = errors.New("未找到客户端证书")
	ErrSSLRequired           = errors.New("客户端要求加密传输，但服务端不支持 SSL")
)

// ErrLocalFile LOAD DATA LOCAL INFILE 读取本地文件失败
var ErrLocalFile = errors.New("读取本地文件失败")
