package auth

import (
	"crypto/sha256"
)

// 服务端在 AuthMoreData 里用单个字节指挥 caching_sha2 的流程
const (
	cachingSHA2FastAuthOK = 3
	cachingSHA2FullAuth   = 4
)

// 客户端请求服务端公钥的单字节报文
const (
	requestPublicKeySHA256      = 1
	requestPublicKeyCachingSHA2 = 2
)

// CachingSHA2Password caching_sha2_password，8.0 之后的默认插件。
// 快路径：SHA256 scramble 命中服务端缓存，服务端回一个 0x03 然后直接 OK；
// 慢路径：服务端回 0x04，要么走 TLS 明文，要么先要公钥再用 RSA 加密密码
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_caching_sha2_authentication_exchanges.html
type CachingSHA2Password struct{}

func (p *CachingSHA2Password) Name() string {
	return "caching_sha2_password"
}

// InitialResponse
// 响应是 XOR(SHA256(password), SHA256(SHA256(SHA256(password)), seed))
func (p *CachingSHA2Password) InitialResponse(ex *Exchange) ([]byte, error) {
	return scrambleSHA256(ex.Seed, ex.Password), nil
}

func (p *CachingSHA2Password) NextResponse(ex *Exchange, serverData []byte) ([]byte, error) {
	if len(serverData) == 1 {
		switch serverData[0] {
		case cachingSHA2FastAuthOK:
			// 缓存命中，下一个包就是 OK，这一轮不用回
			return nil, nil
		case cachingSHA2FullAuth:
			if ex.Secure {
				// 加密通道上直接发明文
				return append([]byte(ex.Password), 0x00), nil
			}
			// 明文通道先要公钥
			return []byte{requestPublicKeyCachingSHA2}, nil
		}
	}
	// 服务端发来了 PEM 格式的公钥
	return encryptPassword(ex.Password, ex.Seed, serverData)
}

func scrambleSHA256(seed []byte, password string) []byte {
	if len(password) == 0 {
		return nil
	}
	crypt := sha256.New()
	crypt.Write([]byte(password))
	message1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(message1)
	message1Hash := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(message1Hash)
	crypt.Write(seed)
	message2 := crypt.Sum(nil)

	for i := range message1 {
		message1[i] ^= message2[i]
	}
	return message1
}
