package auth

// OldPassword mysql_old_password，4.1 之前的旧散列
// 只为了兼容很老的账号保留，能不用就不用
type OldPassword struct{}

func (p *OldPassword) Name() string {
	return "mysql_old_password"
}

func (p *OldPassword) InitialResponse(ex *Exchange) ([]byte, error) {
	if len(ex.Password) == 0 {
		return nil, nil
	}
	// 旧协议只用 seed 的前 8 个字节
	seed := ex.Seed
	if len(seed) > 8 {
		seed = seed[:8]
	}
	return append(scramble323(seed, []byte(ex.Password)), 0x00), nil
}

func (p *OldPassword) NextResponse(ex *Exchange, _ []byte) ([]byte, error) {
	return []byte{}, nil
}

// scramble323 旧版散列，随机数发生器的系数都是协议定死的
func scramble323(seed, password []byte) []byte {
	if len(password) == 0 {
		return nil
	}

	hashPw := oldHash(password)
	hashSeed := oldHash(seed)

	seed1 := (hashPw[0] ^ hashSeed[0]) % 0x3FFFFFFF
	seed2 := (hashPw[1] ^ hashSeed[1]) % 0x3FFFFFFF

	scramble := make([]byte, 8)
	for i := range scramble {
		seed1 = (seed1*3 + seed2) % 0x3FFFFFFF
		seed2 = (seed1 + seed2 + 33) % 0x3FFFFFFF
		scramble[i] = byte(uint64(float64(seed1)/float64(0x3FFFFFFF)*31) + 64)
	}

	seed1 = (seed1*3 + seed2) % 0x3FFFFFFF
	seed2 = (seed1 + seed2 + 33) % 0x3FFFFFFF
	extra := byte(uint64(float64(seed1) / float64(0x3FFFFFFF) * 31))
	for i := range scramble {
		scramble[i] ^= extra
	}
	return scramble
}

// oldHash 旧版密码散列，空格和制表符不参与计算
func oldHash(password []byte) [2]uint64 {
	var nr, add, nr2, tmp uint64
	nr, add, nr2 = 1345345333, 7, 0x12345671

	for _, c := range password {
		if c == ' ' || c == '\t' {
			continue
		}
		tmp = uint64(c)
		nr ^= (((nr & 63) + add) * tmp) + (nr << 8)
		nr2 += (nr2 << 8) ^ nr
		add += tmp
	}
	return [2]uint64{nr & ((1 << 31) - 1), nr2 & ((1 << 31) - 1)}
}
