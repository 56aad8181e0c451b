package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/pkg/errors"

	"github.com/meoying/dbdriver/internal/errs"
)

// encryptPassword 明文通道上的密码加密：
// 密码（含结尾 0x00）先和 seed 循环 XOR，再用服务端公钥做 RSA-OAEP
func encryptPassword(password string, seed, pubKeyPEM []byte) ([]byte, error) {
	block, _ := pem.Decode(pubKeyPEM)
	if block == nil {
		return nil, fmt.Errorf("%w，服务端公钥不是合法的 PEM", errs.ErrPktMalformed)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "解析服务端公钥失败")
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w，服务端公钥不是 RSA 公钥", errs.ErrPktMalformed)
	}

	plain := make([]byte, len(password)+1)
	copy(plain, password)
	for i := range plain {
		plain[i] ^= seed[i%len(seed)]
	}

	enc, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, rsaPub, plain, nil)
	if err != nil {
		return nil, errors.Wrap(err, "RSA 加密密码失败")
	}
	return enc, nil
}
