package auth

// SHA256Password sha256_password，caching_sha2 之前的 RSA 方案。
// 加密通道上直接发明文；明文通道上先用一个 0x01 要公钥，
// 再用 RSA 加密过的密码应答
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_authentication_methods.html
type SHA256Password struct{}

func (p *SHA256Password) Name() string {
	return "sha256_password"
}

func (p *SHA256Password) InitialResponse(ex *Exchange) ([]byte, error) {
	if len(ex.Password) == 0 {
		return []byte{}, nil
	}
	if ex.Secure {
		return append([]byte(ex.Password), 0x00), nil
	}
	return []byte{requestPublicKeySHA256}, nil
}

func (p *SHA256Password) NextResponse(ex *Exchange, serverData []byte) ([]byte, error) {
	// 服务端发来了 PEM 格式的公钥
	return encryptPassword(ex.Password, ex.Seed, serverData)
}
