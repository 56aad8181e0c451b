package auth

import (
	"crypto/sha1"
)

// NativePassword mysql_native_password，
// 不认 ClientPluginAuth 的老服务端也默认走它
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_authentication_methods_native_password_authentication.html
type NativePassword struct{}

func (p *NativePassword) Name() string {
	return "mysql_native_password"
}

// InitialResponse
// 响应是 SHA1(password) XOR SHA1(seed + SHA1(SHA1(password)))
func (p *NativePassword) InitialResponse(ex *Exchange) ([]byte, error) {
	if len(ex.Password) == 0 {
		return nil, nil
	}
	// seed 有时会带上结尾的 0x00，只取前 20 个字节
	seed := ex.Seed
	if len(seed) > 20 {
		seed = seed[:20]
	}

	crypt := sha1.New()
	crypt.Write([]byte(ex.Password))
	stage1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(stage1)
	hash := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(seed)
	crypt.Write(hash)
	scramble := crypt.Sum(nil)

	for i := range scramble {
		scramble[i] ^= stage1[i]
	}
	return scramble, nil
}

// NextResponse native password 没有后续挑战，
// 走到这里说明服务端行为异常，回空包让它自己收场
func (p *NativePassword) NextResponse(_ *Exchange, _ []byte) ([]byte, error) {
	return []byte{}, nil
}
