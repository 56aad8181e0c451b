package auth

// ClearPassword mysql_clear_password，密码原样发出，
// 给 PAM、LDAP 这类服务端侧校验的方案用
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_authentication_methods_clear_text_password.html
type ClearPassword struct{}

func (p *ClearPassword) Name() string {
	return "mysql_clear_password"
}

func (p *ClearPassword) InitialResponse(ex *Exchange) ([]byte, error) {
	return append([]byte(ex.Password), 0x00), nil
}

func (p *ClearPassword) NextResponse(ex *Exchange, _ []byte) ([]byte, error) {
	return append([]byte(ex.Password), 0x00), nil
}
